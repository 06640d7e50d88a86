package services

import (
	"bytes"
	"text/template"

	"rentalsite/errors"
	"rentalsite/models"

	"github.com/goccy/go-json"
)

// Các file TypeScript dùng để build lại site tĩnh
const (
	RoomsTSFile     = "rooms.ts"
	ServicesTSFile  = "services.ts"
	ProvincesTSFile = "provinces.ts"
)

var tsTemplates = template.Must(template.New("ts").Funcs(template.FuncMap{
	"literal": tsLiteral,
}).Parse(`
{{- define "rooms.ts" -}}
// Generated file, edit through the admin panel.
import type { Room } from './types';

export const rooms: Room[] = {{ literal .Rooms }};

export default rooms;
{{ end -}}

{{- define "services.ts" -}}
// Generated file, edit through the admin panel.
import type { Service } from './types';

export const services: Service[] = {{ literal .Services }};

export default services;
{{ end -}}

{{- define "provinces.ts" -}}
// Generated file, edit through the admin panel.
import type { Province } from './types';

export const provinces: Province[] = {{ literal .Provinces }};

export default provinces;
{{ end -}}
`))

// tsLiteral in giá trị dưới dạng JSON thụt lề, hợp lệ như literal TypeScript
func tsLiteral(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

type tsData struct {
	Rooms     []models.Room
	Services  []models.Service
	Provinces []models.Province
}

func renderTS(name string, data tsData) ([]byte, error) {
	var buf bytes.Buffer
	if err := tsTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeIOError, "cannot generate "+name, err)
	}
	return buf.Bytes(), nil
}

func GenerateRoomsTS(rooms []models.Room) ([]byte, error) {
	if rooms == nil {
		rooms = []models.Room{}
	}
	return renderTS(RoomsTSFile, tsData{Rooms: rooms})
}

func GenerateServicesTS(services []models.Service) ([]byte, error) {
	if services == nil {
		services = []models.Service{}
	}
	return renderTS(ServicesTSFile, tsData{Services: services})
}

func GenerateProvincesTS(provinces []models.Province) ([]byte, error) {
	if provinces == nil {
		provinces = []models.Province{}
	}
	return renderTS(ProvincesTSFile, tsData{Provinces: provinces})
}

package config

import (
	"context"
	"fmt"

	"rentalsite/constants"
	"rentalsite/services/logger"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// Components là các kết nối hạ tầng; trường nil nghĩa là tính năng tương ứng bị tắt
type Components struct {
	DB         *gorm.DB
	Redis      *redis.Client
	Cloudinary *cloudinary.Cloudinary
}

func InitApp(cfg Config) (*gin.Engine, *melody.Melody, *cron.Cron) {
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization", constants.SessionHeader)
	configCors.AddExposeHeaders(constants.SessionHeader)
	configCors.AllowCredentials = true
	if len(cfg.CORSOrigins) > 0 {
		configCors.AllowOrigins = cfg.CORSOrigins
	} else {
		configCors.AllowOriginFunc = func(origin string) bool {
			return true
		}
	}
	router.Use(cors.New(configCors))

	_ = router.SetTrustedProxies(nil)

	m := melody.New()
	c := cron.New()
	return router, m, c
}

// InitComponents kết nối DB, Redis, Cloudinary. Chỉ DB là bắt buộc khi STORE_DRIVER=postgres.
func InitComponents(ctx context.Context, cfg Config, log logger.Logger) (Components, error) {
	var comps Components

	if cfg.StoreDriver == StorePostgres {
		db, err := ConnectDB(cfg.DatabaseURL)
		if err != nil {
			return comps, err
		}
		comps.DB = db
		log.Info("connected to postgres")
	}

	rdb, err := ConnectRedis(ctx, cfg)
	switch {
	case err != nil:
		log.Warn("redis disabled: %v", err)
	case rdb == nil:
		log.Info("redis not configured, room cache disabled")
	default:
		comps.Redis = rdb
		log.Info("connected to redis at %s", cfg.RedisAddr)
	}

	cld, err := ConnectCloudinary(cfg)
	switch {
	case err != nil:
		log.Warn("cloudinary disabled: %v", err)
	case cld == nil:
		log.Info("cloudinary not configured, image upload disabled")
	default:
		comps.Cloudinary = cld
	}

	return comps, nil
}

// InitWebSocket mở /ws. Trình duyệt không gửi được header khi mở websocket
// nên session id đọc từ query ?session= trước, rồi mới tới header X-Session-ID.
func InitWebSocket(router *gin.Engine, m *melody.Melody, log logger.Logger) {
	router.GET("/ws", func(c *gin.Context) {
		session := c.Query("session")
		if session == "" {
			session = c.GetHeader(constants.SessionHeader)
		}
		keys := map[string]interface{}{constants.SessionContextKey: session}
		if err := m.HandleRequestWithKeys(c.Writer, c.Request, keys); err != nil {
			log.Warn("websocket: %v", err)
		}
	})
	m.HandleConnect(func(s *melody.Session) {
		id, _ := s.Get(constants.SessionContextKey)
		log.Debug("websocket connected: session=%v", id)
	})
}

func (c Components) Close() error {
	var firstErr error
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			firstErr = err
		}
	}
	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err == nil {
			err = sqlDB.Close()
		}
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close db: %w", err)
		}
	}
	return firstErr
}

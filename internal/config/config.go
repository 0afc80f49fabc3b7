package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Configはアプリ全体の設定
type Config struct {
	HTTP HTTPServer `envPrefix:"HTTP_"`
	Log  Log

	//単一ファイルのsqliteデータベース
	DatabasePath string `env:"DATABASE_PATH" envDefault:"data/ecommerce.db"`

	JWTSecret string `env:"JWT_SECRET" envDefault:"your_jwt_secret_key_here"`

	//SPAのオリジン（CORSで使う）
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
}

type HTTPServer struct {
	Host string `env:"HOST" envDefault:"0.0.0.0"`
	Port string `env:"PORT" envDefault:"8080"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// Addr はリッスンアドレスを返す。
func (h HTTPServer) Addr() string {
	return h.Host + ":" + h.Port
}

// Loadは.envと環境変数から設定を読む
func Load() (Config, error) {
	// .envがないのはprodでは普通なので無視する
	_ = godotenv.Load()

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Seating  SeatingConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type RedisConfig struct {
	Enabled           bool
	Addr              string
	Password          string
	DB                int
	SeatMapTTLSeconds int
}

// SeatingConfig drives the seat map layout shared by every slot.
type SeatingConfig struct {
	SeatsPerRow  int
	VIPPrice     float64
	PremiumPrice float64
	RegularPrice float64
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("REDIS_ENABLED", false)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("SEAT_MAP_TTL_SECONDS", 10)
	viper.SetDefault("SEATS_PER_ROW", 12)
	viper.SetDefault("VIP_PRICE", 500)
	viper.SetDefault("PREMIUM_PRICE", 350)
	viper.SetDefault("REGULAR_PRICE", 250)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Enabled:           viper.GetBool("REDIS_ENABLED"),
			Addr:              viper.GetString("REDIS_ADDR"),
			Password:          viper.GetString("REDIS_PASS"),
			DB:                viper.GetInt("REDIS_DB"),
			SeatMapTTLSeconds: viper.GetInt("SEAT_MAP_TTL_SECONDS"),
		},
		Seating: SeatingConfig{
			SeatsPerRow:  viper.GetInt("SEATS_PER_ROW"),
			VIPPrice:     viper.GetFloat64("VIP_PRICE"),
			PremiumPrice: viper.GetFloat64("PREMIUM_PRICE"),
			RegularPrice: viper.GetFloat64("REGULAR_PRICE"),
		},
	}

	return config, nil
}

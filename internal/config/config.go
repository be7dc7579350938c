package config

import (
	"flag"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type ServerCfg struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}
type MysqlCfg struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Database     string `mapstructure:"database"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Charset      string `mapstructure:"charset"`
	MaxIdleConns int    `mapstructure:"maxIdleConns"`
	MaxOpenConns int    `mapstructure:"maxOpenConns"`
}
type RabbitCfg struct {
	URL string `mapstructure:"url"`
}
type RedisCfg struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}
type SecurityCfg struct {
	HMACSecret string `mapstructure:"hmacSecret"`
}
type AccountingCfg struct {
	ApiUrl     string `mapstructure:"apiUrl"`
	ApiKey     string `mapstructure:"apiKey"`
	TimeoutSec int    `mapstructure:"timeoutSec"`
	MaxRetries int    `mapstructure:"maxRetries"`
}
type AuditCfg struct {
	Shards        int `mapstructure:"shards"`
	HistoryMonths int `mapstructure:"historyMonths"`
}

// Roles maps a role name to a broker identifier. Replaces the hard-coded
// principal broker ids the legacy system carried.
type Root struct {
	Server     ServerCfg         `mapstructure:"server"`
	Mysql      MysqlCfg          `mapstructure:"mysql"`
	RabbitMQ   RabbitCfg         `mapstructure:"rabbitmq"`
	Redis      RedisCfg          `mapstructure:"redis"`
	Security   SecurityCfg       `mapstructure:"security"`
	Accounting AccountingCfg     `mapstructure:"accounting"`
	Audit      AuditCfg          `mapstructure:"audit"`
	Roles      map[string]uint64 `mapstructure:"roles"`
}

var C Root

func Init() {
	env := flag.String("env", "dev", "config env: dev|prod")
	flag.Parse()

	v := viper.New()
	v.SetConfigFile("config/config." + *env + ".yaml")
	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("read config file failed: %v", err)
	}
	if err := v.Unmarshal(&C); err != nil {
		log.Fatalf("unmarshal config failed: %v", err)
	}

	// sane defaults
	if strings.TrimSpace(C.Server.Port) == "" {
		C.Server.Port = "8080"
	}
	if C.Accounting.TimeoutSec <= 0 {
		C.Accounting.TimeoutSec = 5
	}
	if C.Accounting.MaxRetries <= 0 {
		C.Accounting.MaxRetries = 3
	}
	if C.Audit.Shards <= 0 {
		C.Audit.Shards = 4
	}
	if C.Audit.HistoryMonths <= 0 {
		C.Audit.HistoryMonths = 12
	}
}

// BrokerForRole resolves a configured role to a broker id.
func BrokerForRole(role string) (uint64, bool) {
	id, ok := C.Roles[role]
	return id, ok
}

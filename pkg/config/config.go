package config

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	ce "github.com/ticketing-services/ticketing-backend/pkg/errors"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const DefaultAppName = "ticketing"

const HeaderRequestId = "x-request-id"
const RequestIdLoggingKey = "request_id"

type Configuration struct {
	Database Database
	Logging  Logging
	Tenancy  Tenancy
	Clients  Clients `mapstructure:"clients"`
	Metrics  Metrics
	Sentry   Sentry `mapstructure:"sentry"`
	Kafka    Kafka  `mapstructure:"kafka"`
	Auth     Auth   `mapstructure:"auth"`
	Server   Server
	Loaded   bool
}

type Database struct {
	Host              string
	Port              int
	User              string
	Password          string
	Name              string
	CACertPath        string        `mapstructure:"ca_cert_path"`
	PoolLimit         int           `mapstructure:"pool_limit"`
	SlowQueryDuration time.Duration `mapstructure:"slow_query_duration"`
}

type Logging struct {
	Level   string
	Console bool
}

// Tenancy holds everything the subdomain router needs: the production apex
// domain, the platform's own alias, and the labels that can never belong to
// a customer organization. These are configuration, not literals at call
// sites.
type Tenancy struct {
	RootDomain         string   `mapstructure:"root_domain"`
	BaseAlias          string   `mapstructure:"base_alias"`
	ReservedSubdomains []string `mapstructure:"reserved_subdomains"`
}

type Clients struct {
	Redis Redis `mapstructure:"redis"`
}

type Redis struct {
	Host       string
	Port       int
	Username   string
	Password   string
	DB         int
	Expiration RedisExpiration
}

type RedisExpiration struct {
	Subdomain  time.Duration `mapstructure:"subdomain"`
	Membership time.Duration `mapstructure:"membership"`
}

type Metrics struct {
	// Path on the metrics listener that serves prometheus traffic.
	Path string `mapstructure:"path"`

	// Port the metrics listener binds to.
	Port int `mapstructure:"port"`
}

type Sentry struct {
	Dsn string
}

type Kafka struct {
	Servers []string `mapstructure:"servers"`
	Topic   string   `mapstructure:"topic"`
}

type Auth struct {
	// Secret verifies the HS256 bearer tokens issued by the auth frontend.
	Secret string `mapstructure:"secret"`
}

type Server struct {
	Port int
	// PortalRateLimitPerMinute caps anonymous portal ticket submissions per
	// client address.
	PortalRateLimitPerMinute int `mapstructure:"portal_rate_limit_per_minute"`
}

var DefaultReservedSubdomains = []string{
	"www", "api", "admin", "app", "mail", "ftp", "blog",
	"support", "help", "docs", "status", "staging", "dev",
}

var LoadedConfig Configuration

func Get() *Configuration {
	if !LoadedConfig.Loaded {
		Load()
	}
	return &LoadedConfig
}

func RedisUrl() string {
	return fmt.Sprintf("%s:%d", Get().Clients.Redis.Host, Get().Clients.Redis.Port)
}

func readConfigFile(v *viper.Viper) {
	v.SetConfigName("config.yaml")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs/")
	v.AddConfigPath("../../configs/")
	v.AddConfigPath("../../../configs")

	if path, ok := os.LookupEnv("CONFIG_PATH"); ok {
		v.AddConfigPath(path)
	}
	err := v.ReadInConfig()
	if err != nil {
		log.Logger.Warn().Msgf("config.yaml file not loaded: %s", err.Error())
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("Loaded", true)
	// In viper you have to set defaults, otherwise loading from ENV doesn't work
	//   without a config file present
	v.SetDefault("database.host", "")
	v.SetDefault("database.port", "")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "")
	v.SetDefault("database.pool_limit", 20)
	v.SetDefault("database.slow_query_duration", 2*time.Second)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", false)

	v.SetDefault("tenancy.root_domain", "myticketingsysem.site")
	v.SetDefault("tenancy.base_alias", DefaultAppName)
	v.SetDefault("tenancy.reserved_subdomains", DefaultReservedSubdomains)

	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("metrics.port", 9000)

	v.SetDefault("sentry.dsn", "")

	v.SetDefault("kafka.servers", []string{})
	v.SetDefault("kafka.topic", "platform.ticketing.events")

	v.SetDefault("auth.secret", "")

	v.SetDefault("server.port", 8000)
	v.SetDefault("server.portal_rate_limit_per_minute", 10)

	v.SetDefault("clients.redis.host", "")
	v.SetDefault("clients.redis.port", "")
	v.SetDefault("clients.redis.username", "")
	v.SetDefault("clients.redis.password", "")
	v.SetDefault("clients.redis.db", 0)
	v.SetDefault("clients.redis.expiration.subdomain", 1*time.Minute)
	v.SetDefault("clients.redis.expiration.membership", 1*time.Minute)
}

func Load() {
	v := viper.New()

	readConfigFile(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	err := v.Unmarshal(&LoadedConfig)
	if err != nil {
		panic(err)
	}

	if LoadedConfig.Clients.Redis.Host == "" {
		log.Warn().Msg("Caching is disabled.")
	}
}

func ProgramString() string {
	return strings.Join(os.Args, " ")
}

// SkipLogging lists the paths excluded from request logging.
func SkipLogging(c echo.Context) bool {
	p := c.Request().URL.Path
	return p == "/ping" || p == "/ping/" || p == Get().Metrics.Path
}

func CustomHTTPErrorHandler(err error, c echo.Context) {
	var code int
	var message ce.ErrorResponse

	if c.Response().Committed {
		c.Logger().Error(err)
		return
	}

	if errResp, ok := err.(ce.ErrorResponse); ok {
		code = ce.GetGeneralResponseCode(errResp)
		message = errResp
	} else if he, ok := err.(*echo.HTTPError); ok {
		errResp := ce.NewErrorResponseFromEchoError(he)
		code = errResp.Errors[0].Status
		message = errResp
	} else {
		code = http.StatusInternalServerError
		message = ce.NewErrorResponse(code, "", http.StatusText(http.StatusInternalServerError))
	}

	// Send response
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, message)
	}
	if err != nil {
		log.Logger.Error().Err(err)
	}
}

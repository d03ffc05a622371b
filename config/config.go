package config

import (
	"os"
	"reflect"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	l "github.com/rs/zerolog/log"
	"pedro.to/valgo/logger"
)

const Version = "0.3.0"

var IsProd = os.Getenv("APP_ENV") == "prod"

var (
	RiotUsername string
	RiotPassword string

	// RegionAffinity pins the account region instead of resolving it through
	// the geolocation service.
	RegionAffinity string
	// ClientVersion pins the client version header instead of fetching the
	// live version metadata.
	ClientVersion string

	RequestTimeoutSeconds int
	SessionsDir           string

	AuthURL         string
	ReauthURL       string
	EntitlementsURL string
	UserinfoURL     string
	GeoURL          string
	VersionURL      string

	WebserverPort          string
	WebserverViewsDir      string
	WebRateLimitMaxConns   int
	WebRateLimitExpSeconds int

	Debug bool
)

type SupportStringconv interface {
	~int | ~int8 | ~int64 | ~float32 | ~string | ~bool
}

func conv(v string, to reflect.Kind) any {
	var err error

	if to == reflect.String {
		return v
	}

	if to == reflect.Bool {
		if bool, err := strconv.ParseBool(v); err == nil {
			return bool
		}
	}

	if to == reflect.Int {
		if int, err := strconv.Atoi(v); err == nil {
			return int
		}
	}

	if to == reflect.Int8 {
		if i64, err := strconv.ParseInt(v, 10, 8); err == nil {
			return int8(i64)
		}
	}

	if to == reflect.Int64 {
		if i64, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i64
		}
	}

	if to == reflect.Float32 {
		if f32, err := strconv.ParseFloat(v, 32); err == nil {
			return f32
		}
	}

	l.Panic().
		Err(err).
		Str("ctx", "config").
		Msg("")
	return nil
}

func Env[T SupportStringconv](key string, def T) T {
	if v, ok := os.LookupEnv(key); ok {
		val := conv(v, reflect.TypeOf(def).Kind()).(T)
		l.Debug().
			Str("ctx", "config").
			Msgf("=> [%s]: %v", key, val)
		return val
	}
	return def
}

func LoadVars() {
	l := l.With().
		Str("ctx", "config").
		Logger()

	// A missing .env is fine, the CLI usually runs on plain env vars.
	if err := godotenv.Load(); err != nil {
		l.Debug().Msg("no .env file found, using environment")
	}

	l.Info().Msg("reading environment variables")

	RiotUsername = Env("RIOT_USERNAME", "")
	RiotPassword = Env("RIOT_PASSWORD", "")

	RegionAffinity = Env("REGION_AFFINITY", "")
	ClientVersion = Env("CLIENT_VERSION", "")

	RequestTimeoutSeconds = Env("REQUEST_TIMEOUT_SECONDS", 15)
	SessionsDir = Env("SESSIONS_DIR", "")

	AuthURL = Env("AUTH_URL", "")
	ReauthURL = Env("REAUTH_URL", "")
	EntitlementsURL = Env("ENTITLEMENTS_URL", "")
	UserinfoURL = Env("USERINFO_URL", "")
	GeoURL = Env("GEO_URL", "")
	VersionURL = Env("VERSION_URL", "")

	WebserverPort = Env("WEBSERVER_PORT", "4040")
	WebserverViewsDir = Env("WEBSERVER_VIEWS_DIR", "webserver/views")
	WebRateLimitMaxConns = Env("WEB_RATELIMIT_MAX_CONNS", 20)
	WebRateLimitExpSeconds = Env("WEB_RATELIMIT_EXP_SECONDS", 60)

	Debug = Env("DEBUG", false)
	logger.SetLevel(Env("LOG_LEVEL", int8(zerolog.InfoLevel)))
	if !IsProd {
		Debug = Env("DEBUG", true)
		logger.SetLevel(Env("LOG_LEVEL", int8(zerolog.DebugLevel)))
		logger.Pretty()
	}
}

func Setup() {
	logger.SetupLogger()
	LoadVars()
}

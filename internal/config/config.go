package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type HTTPServer struct {
	Host string `validate:"required"`
	Port string `validate:"required,numeric"`
}

type RedisCache struct {
	Host     string
	Port     string
	Password string
	DB       int `validate:"gte=0"`
}

// Enabled reports whether flows should be kept in Redis rather than in memory.
func (r RedisCache) Enabled() bool {
	return r.Host != ""
}

type Postgres struct {
	Host     string `validate:"required"`
	Port     string `validate:"required,numeric"`
	User     string `validate:"required"`
	Password string
	DBName   string `validate:"required"`
	SSLMode  string `validate:"oneof=disable require verify-ca verify-full"`
}

type Qdrant struct {
	Host       string `validate:"required"`
	Port       int    `validate:"gt=0"`
	APIKey     string
	UseTLS     bool
	Collection string `validate:"required"`
}

const (
	RecommenderRemote   = "remote"
	RecommenderSemantic = "semantic"

	VectorStorePostgres = "postgres"
	VectorStoreQdrant   = "qdrant"
)

type Recommender struct {
	Mode    string        `validate:"oneof=remote semantic"`
	URL     string        `validate:"required_if=Mode remote,omitempty,url"`
	Timeout time.Duration `validate:"gt=0"`
}

type TMDB struct {
	BaseURL string        `validate:"required,url"`
	Token   string
	Timeout time.Duration `validate:"gt=0"`
}

// Enabled is false without a token; posters are then never looked up.
func (t TMDB) Enabled() bool {
	return t.Token != ""
}

type OpenAI struct {
	BaseURL string `validate:"required,url"`
	APIKey  string
	Model   string `validate:"required"`
}

type VectorStore struct {
	Kind           string  `validate:"oneof=postgres qdrant"`
	MatchThreshold float32 `validate:"gte=-1,lte=1"`
	MatchCount     int     `validate:"gte=1"`
}

type Flow struct {
	TTL          time.Duration `validate:"gt=0"`
	PosterWorker bool
}

type Log struct {
	Level  string `validate:"oneof=trace debug info warn error"`
	Pretty bool
}

type Config struct {
	HTTP        HTTPServer
	Redis       RedisCache
	Postgres    Postgres
	Qdrant      Qdrant
	Recommender Recommender
	TMDB        TMDB
	OpenAI      OpenAI
	VectorStore VectorStore
	Flow        Flow
	Log         Log
}

const logtag = "[config]"

func Load() *Config {
	configPath := flag.String("config", "", "path env file")
	flag.Parse()

	if *configPath != "" {
		if err := godotenv.Load(*configPath); err != nil {
			log.Fatalf("%s err loading env from file : %v", logtag, err)
		}
		log.Printf("%s using env from : %s", logtag, *configPath)
	} else {
		log.Printf("%s using env from .env", logtag)
		_ = godotenv.Load()
	}

	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("%s invalid config : %v", logtag, err)
	}

	return cfg
}

// FromEnv builds the config from the current environment without touching
// flags or env files.
func FromEnv() *Config {
	return &Config{
		HTTP:        *newHTTP(),
		Redis:       *newRedis(),
		Postgres:    *newPostgres(),
		Qdrant:      *newQdrant(),
		Recommender: *newRecommender(),
		TMDB:        *newTMDB(),
		OpenAI:      *newOpenAI(),
		VectorStore: *newVectorStore(),
		Flow:        *newFlow(),
		Log:         *newLog(),
	}
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%s %w", logtag, err)
	}
	if c.Recommender.Mode == RecommenderSemantic && c.OpenAI.APIKey == "" {
		return fmt.Errorf("%s OPENAI_API_KEY is required for the semantic recommender", logtag)
	}
	return nil
}

func newHTTP() *HTTPServer {
	return &HTTPServer{
		Port: getenv("HTTP_PORT", "8080"),
		Host: getenv("HTTP_HOST", "localhost"),
	}
}

func newRedis() *RedisCache {
	return &RedisCache{
		Port:     getenv("REDIS_PORT", "6379"),
		Host:     getenv("REDIS_HOST", ""),
		Password: getsecret("REDIS_PASSWORD", ""),
		DB:       getint("REDIS_DB", 0),
	}
}

func newPostgres() *Postgres {
	return &Postgres{
		Host:     getenv("DB_HOST", "localhost"),
		Port:     getenv("DB_PORT", "5432"),
		User:     getenv("DB_USER", "admin"),
		Password: getsecret("DB_PASSWORD", "shared"),
		DBName:   getenv("DB_NAME", "popchoice"),
		SSLMode:  getenv("DB_SSLMODE", "disable"),
	}
}

func newQdrant() *Qdrant {
	return &Qdrant{
		Host:       getenv("QDRANT_HOST", "localhost"),
		Port:       getint("QDRANT_PORT", 6334),
		APIKey:     getsecret("QDRANT_API_KEY", ""),
		UseTLS:     getbool("QDRANT_TLS", false),
		Collection: getenv("QDRANT_COLLECTION", "popchoice"),
	}
}

func newRecommender() *Recommender {
	return &Recommender{
		Mode:    getenv("RECOMMENDER_MODE", RecommenderRemote),
		URL:     getenv("RECOMMENDER_URL", "http://localhost:8888/.netlify/functions/popchoice"),
		Timeout: getduration("RECOMMENDER_TIMEOUT", 60*time.Second),
	}
}

func newTMDB() *TMDB {
	return &TMDB{
		BaseURL: getenv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		Token:   getsecret("TMDB_TOKEN", ""),
		Timeout: getduration("TMDB_TIMEOUT", 10*time.Second),
	}
}

func newOpenAI() *OpenAI {
	return &OpenAI{
		BaseURL: getenv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		APIKey:  getsecret("OPENAI_API_KEY", ""),
		Model:   getenv("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small"),
	}
}

func newVectorStore() *VectorStore {
	return &VectorStore{
		Kind:           getenv("VECTOR_STORE", VectorStorePostgres),
		MatchThreshold: float32(getfloat("MATCH_THRESHOLD", 0.02)),
		MatchCount:     getint("MATCH_COUNT", 1),
	}
}

func newFlow() *Flow {
	return &Flow{
		TTL:          getduration("FLOW_TTL", 2*time.Hour),
		PosterWorker: getbool("FLOW_ASYNC_POSTERS", true),
	}
}

func newLog() *Log {
	return &Log{
		Level:  strings.ToLower(getenv("LOG_LEVEL", "info")),
		Pretty: getbool("LOG_PRETTY", false),
	}
}

func getenv(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		fmt.Printf("%s %s undefined. Using default value %s\n", logtag, key, defaultValue)
		return defaultValue
	}
	fmt.Printf("%s %s = %s\n", logtag, key, val)
	return val
}

// getsecret is getenv that never prints the value.
func getsecret(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		fmt.Printf("%s %s undefined\n", logtag, key)
		return defaultValue
	}
	fmt.Printf("%s %s is set\n", logtag, key)
	return val
}

func getint(key string, defaultValue int) int {
	raw := getenv(key, strconv.Itoa(defaultValue))
	val, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Printf("%s %s is not an integer. Using default value %d\n", logtag, key, defaultValue)
		return defaultValue
	}
	return val
}

func getfloat(key string, defaultValue float64) float64 {
	raw := getenv(key, strconv.FormatFloat(defaultValue, 'f', -1, 64))
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		fmt.Printf("%s %s is not a number. Using default value %v\n", logtag, key, defaultValue)
		return defaultValue
	}
	return val
}

func getbool(key string, defaultValue bool) bool {
	raw := getenv(key, strconv.FormatBool(defaultValue))
	val, err := strconv.ParseBool(raw)
	if err != nil {
		fmt.Printf("%s %s is not a boolean. Using default value %t\n", logtag, key, defaultValue)
		return defaultValue
	}
	return val
}

func getduration(key string, defaultValue time.Duration) time.Duration {
	raw := getenv(key, defaultValue.String())
	val, err := time.ParseDuration(raw)
	if err != nil {
		fmt.Printf("%s %s is not a duration. Using default value %s\n", logtag, key, defaultValue)
		return defaultValue
	}
	return val
}

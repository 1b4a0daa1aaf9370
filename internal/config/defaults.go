package config

import "time"

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "courier",
	Pass: "courier",
	Name: "courier_db",
}

var defaultAuth = Auth{
	Secret:   "courier_delivery_secret_key_2025",
	TokenTTL: 24 * time.Hour,
}

var defaultKafka = Kafka{
	Topic:   "tracking-updates",
	GroupID: "courier-tracking-feed",
}

var defaultRedis = Redis{
	CacheTTL: 30 * time.Second,
}

var defaultRateLimit = RateLimit{
	Rate:  10,
	Burst: 20,
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultAuth returns the default auth settings.
func DefaultAuth() Auth {
	return defaultAuth
}

// DefaultKafka returns the default Kafka settings.
func DefaultKafka() Kafka {
	return defaultKafka
}

// DefaultRedis returns the default Redis settings.
func DefaultRedis() Redis {
	return defaultRedis
}

// DefaultRateLimit returns the default rate limiter settings.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}

// DefaultPprof returns the default pprof settings.
func DefaultPprof() Pprof {
	return Pprof{}
}

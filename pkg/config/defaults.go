package config

import "time"

const (
	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	// sheet talks to the spreadsheet API; mongo is the self-hosted backend.
	StoreBackendSheet = "sheet"
	StoreBackendMongo = "mongo"

	DefaultStoreBackend = StoreBackendSheet
	DefaultSheetTimeout = 10 * time.Second

	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "divano"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultKafkaTopic = "booking-events"

	DefaultRequestTimeout  = 30 * time.Second
	DefaultMaxRequestSize  = 1 << 20 // 1 MiB
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

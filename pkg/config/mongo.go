package config

import (
	"fmt"
	"log"
	"strings"
	"time"
)

const (
	defaultMongoURI        = "mongodb://localhost:27017"
	defaultMongoDatabase   = "webshop"
	defaultMongoCollection = "products"
	defaultMongoTimeout    = 10 * time.Second
)

type MongoConfig struct {
	URI         string        `koanf:"uri"`
	Database    string        `koanf:"database"`
	Collection  string        `koanf:"collection"`
	Timeout     time.Duration `koanf:"timeout"`
	StrictTypes bool          `koanf:"stricttypes"`
}

// String returns a string representation of the MongoDB configuration.
func (c *MongoConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- MongoDB ---\n")
	b.WriteString(fmt.Sprintf("  uri: %s\n", MaskURL(c.URI)))
	b.WriteString(fmt.Sprintf("  database: %s\n", c.Database))
	b.WriteString(fmt.Sprintf("  collection: %s\n", c.Collection))
	b.WriteString(fmt.Sprintf("  timeout: %s\n", c.Timeout))
	b.WriteString(fmt.Sprintf("  stricttypes: %t\n", c.StrictTypes))
	return b.String()
}

// Validate fills in the local defaults for unset fields and checks the URI scheme.
func (c *MongoConfig) Validate() error {
	if c.URI == "" {
		log.Println("Using default value for mongo.uri")
		c.URI = defaultMongoURI
	}
	if c.Database == "" {
		log.Println("Using default value for mongo.database")
		c.Database = defaultMongoDatabase
	}
	if c.Collection == "" {
		log.Println("Using default value for mongo.collection")
		c.Collection = defaultMongoCollection
	}
	if c.Timeout <= 0 {
		log.Println("Using default value for mongo.timeout")
		c.Timeout = defaultMongoTimeout
	}
	if !isValidMongoURI(c.URI) {
		return fmt.Errorf("mongo URI must start with 'mongodb://' or 'mongodb+srv://': %s", MaskURL(c.URI))
	}
	return nil
}

// isValidMongoURI checks if the provided URI uses a MongoDB scheme
func isValidMongoURI(uri string) bool {
	return strings.HasPrefix(uri, "mongodb://") ||
		strings.HasPrefix(uri, "mongodb+srv://")
}

// MaskURL hides the credentials part of a connection URL.
func MaskURL(url string) string {
	if url == "" {
		return "<not configured>"
	}
	// Mask the URL by replacing the username and password with "****"
	parts := strings.Split(url, "@")
	if len(parts) == 2 {
		scheme := ""
		if i := strings.Index(parts[0], "://"); i >= 0 {
			scheme = parts[0][:i+3]
		}
		return scheme + "****@" + parts[1]
	}
	return url
}

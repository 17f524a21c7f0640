package config

import (
	"fmt"
	"strings"
)

const (
	StorageDriverMongo  = "mongo"
	StorageDriverMemory = "memory"
)

type StorageConfig struct {
	Driver string `koanf:"driver"`
}

// String returns a string representation of the storage configuration.
func (c *StorageConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Storage ---\n")
	b.WriteString(fmt.Sprintf("  driver: %s\n", c.Driver))
	return b.String()
}

func (c *StorageConfig) Validate() error {
	switch c.Driver {
	case "":
		c.Driver = StorageDriverMongo
		return nil
	case StorageDriverMongo, StorageDriverMemory:
		return nil
	default:
		return fmt.Errorf("unsupported storage driver %q, expected %q or %q", c.Driver, StorageDriverMongo, StorageDriverMemory)
	}
}

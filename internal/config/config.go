package config

import (
	"fmt"
	"log"

	"github.com/BurntSushi/toml"
	"github.com/davecgh/go-spew/spew"
)

// ConfigStruct is the glue for all configuration sections
type ConfigStruct struct {
	Common   Common   `toml:"common"`
	Database Database `toml:"database"`
	Judge    Judge    `toml:"judge"`
}

// Common is the data required for all services
type Common struct {
	LogDir  string `toml:"log_dir"`
	Debug   bool   `toml:"debug"`
	Address string `toml:"address"`
}

// Database is the data required to establish a PostgreSQL connection
type Database struct {
	DBname  string `toml:"dbname"`
	Host    string `toml:"host"`
	SSLmode string `toml:"sslmode"`
	User    string `toml:"user"`
}

// String returns a DSN with all information from the struct
func (d Database) String() string {
	return fmt.Sprintf("sslmode=%s host=%s user=%s dbname=%s", d.SSLmode, d.Host, d.User, d.DBname)
}

// Judge holds the connection details for the judge's Redis instance,
// where run results are published
type Judge struct {
	Host     string `toml:"host"`
	Password string `toml:"password"`
	DB       int    `toml:"DB"`
}

// C represents the loaded config
var C ConfigStruct

func Load(path string) error {
	md, err := toml.DecodeFile(path, &C)
	if len(md.Undecoded()) > 0 {
		log.Println("NOTE: There were a few undecoded keys")
		spew.Dump(md.Undecoded())
	}
	return err
}

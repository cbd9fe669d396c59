package devops

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

type DBEntry struct {
	Name     string `yaml:"name" json:"name"`
	Host     string `yaml:"host" json:"host"`
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
	Driver   string `yaml:"driver" json:"driver"`
}

// GetDSN builds a DSN for dbname. Hosts without a port get the driver default.
func (db DBEntry) GetDSN(dbname string) string {
	host := db.Host
	if strings.EqualFold(db.Driver, "postgres") {
		if !strings.Contains(host, ":") {
			host = host + ":5432"
		}
		return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=require", db.Username, db.Password, host, dbname)
	}
	// username:password@tcp(host:3306)/name?parseTime=true
	if !strings.Contains(host, ":") {
		host = host + ":3306"
	}
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC", db.Username, db.Password, host, dbname)
}

// ParseDBConfig reads the YAML list stored in the parameter.
func ParseDBConfig(value string) ([]DBEntry, error) {
	var parsed []DBEntry
	if err := yaml.Unmarshal([]byte(value), &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}
	return parsed, nil
}

// FindDB looks an entry up by name, case-insensitively.
func FindDB(entries []DBEntry, name string) (DBEntry, bool) {
	for _, e := range entries {
		if strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return DBEntry{}, false
}

var (
	once    sync.Once
	dbList  []DBEntry
	loadErr error
)

// LoadDBConfig fetches the parameter once per process.
func LoadDBConfig(ctx context.Context, paramName string) ([]DBEntry, error) {
	once.Do(func() {
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			loadErr = fmt.Errorf("load aws config: %w", err)
			return
		}

		client := ssm.NewFromConfig(cfg)

		out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
			Name:           aws.String(paramName),
			WithDecryption: aws.Bool(true),
		})
		if err != nil {
			loadErr = fmt.Errorf("get parameter: %w", err)
			return
		}
		if out.Parameter == nil || out.Parameter.Value == nil {
			loadErr = fmt.Errorf("parameter %s is empty", paramName)
			return
		}

		dbList, loadErr = ParseDBConfig(*out.Parameter.Value)
	})

	return dbList, loadErr
}

package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración del pipeline (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App        AppConfig
	Catalog    CatalogConfig
	Dataset    DatasetConfig
	Simulation SimulationConfig
	DB         DBConfig
	Report     ReportConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// CatalogConfig API REST del catálogo de productos.
type CatalogConfig struct {
	BaseURL string
	Timeout time.Duration
}

// DatasetConfig libro de cálculo local y dataset externo (Kaggle) del que se descarga.
type DatasetConfig struct {
	DataDir       string
	ExcelFilePath string
	Name          string // owner/slug en Kaggle
	Download      bool   // descargar antes de leer el libro
	KaggleAPIURL  string
	KaggleUser    string
	KaggleKey     string
}

// SimulationConfig parámetros de la simulación de inventario.
type SimulationConfig struct {
	Days                int
	RestockingFrequency int     // días entre reposiciones
	DemandVariability   float64 // fracción en [0,1)
}

// DBConfig configuración de PostgreSQL para persistir las corridas.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	Persist     bool // guardar snapshot de la corrida
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// ReportConfig salida del reporte PDF. Path vacío = sin reporte.
type ReportConfig struct {
	Path string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, CATALOG_BASE_URL, RESTOCKING_FREQUENCY, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	dataDir := getString(v, "DATA_DIR", "data")
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "retail-pipeline"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		Catalog: CatalogConfig{
			BaseURL: getString(v, "CATALOG_BASE_URL", "https://fakestoreapi.com"),
			Timeout: time.Duration(getInt(v, "CATALOG_TIMEOUT_SECONDS", 15)) * time.Second,
		},
		Dataset: DatasetConfig{
			DataDir:       dataDir,
			ExcelFilePath: getString(v, "EXCEL_FILE_PATH", dataDir+"/superstore.xlsx"),
			Name:          getString(v, "KAGGLE_DATASET_NAME", ""),
			Download:      getBool(v, "DATASET_DOWNLOAD", false),
			KaggleAPIURL:  getString(v, "KAGGLE_API_URL", "https://www.kaggle.com/api/v1"),
			KaggleUser:    getString(v, "KAGGLE_USERNAME", ""),
			KaggleKey:     getString(v, "KAGGLE_KEY", ""),
		},
		Simulation: SimulationConfig{
			Days:                getInt(v, "INVENTORY_SIMULATION_DAYS", 30),
			RestockingFrequency: getInt(v, "RESTOCKING_FREQUENCY", 7),
			DemandVariability:   getFloat(v, "DEMAND_VARIABILITY", 0.2),
		},
		DB: DBConfig{
			Persist:     getBool(v, "SNAPSHOT_PERSIST", false),
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "retail_pipeline"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Report: ReportConfig{
			Path: getString(v, "REPORT_PATH", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate verifica los rangos de los parámetros de simulación y de las fuentes.
func (c *Config) Validate() error {
	if c.Simulation.Days <= 0 {
		return fmt.Errorf("config: INVENTORY_SIMULATION_DAYS debe ser positivo (%d)", c.Simulation.Days)
	}
	if c.Simulation.RestockingFrequency <= 0 {
		return fmt.Errorf("config: RESTOCKING_FREQUENCY debe ser positivo (%d)", c.Simulation.RestockingFrequency)
	}
	if c.Simulation.DemandVariability < 0 || c.Simulation.DemandVariability >= 1 {
		return fmt.Errorf("config: DEMAND_VARIABILITY debe estar en [0,1) (%v)", c.Simulation.DemandVariability)
	}
	if c.Catalog.BaseURL == "" {
		return fmt.Errorf("config: CATALOG_BASE_URL vacío")
	}
	if c.Dataset.Download && c.Dataset.Name == "" {
		return fmt.Errorf("config: DATASET_DOWNLOAD requiere KAGGLE_DATASET_NAME")
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if v.IsSet(key) {
		f, err := strconv.ParseFloat(strings.TrimSpace(v.GetString(key)), 64)
		if err != nil {
			return def
		}
		return f
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return b
	}
	return def
}

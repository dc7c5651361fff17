package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-pipeline/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir()) // sin .env en el directorio de trabajo

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "https://fakestoreapi.com", cfg.Catalog.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, 30, cfg.Simulation.Days)
	assert.Equal(t, 7, cfg.Simulation.RestockingFrequency)
	assert.InDelta(t, 0.2, cfg.Simulation.DemandVariability, 1e-12)
	assert.Equal(t, "data", cfg.Dataset.DataDir)
	assert.Equal(t, "data/superstore.xlsx", cfg.Dataset.ExcelFilePath)
	assert.False(t, cfg.Dataset.Download)
	assert.False(t, cfg.DB.Persist)
	assert.Empty(t, cfg.Report.Path)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CATALOG_BASE_URL", "http://catalog.local")
	t.Setenv("INVENTORY_SIMULATION_DAYS", "90")
	t.Setenv("RESTOCKING_FREQUENCY", "3")
	t.Setenv("DEMAND_VARIABILITY", "0.35")
	t.Setenv("DATA_DIR", "/tmp/pipeline")
	t.Setenv("DATASET_DOWNLOAD", "true")
	t.Setenv("KAGGLE_DATASET_NAME", "owner/superstore")
	t.Setenv("SNAPSHOT_PERSIST", "1")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "http://catalog.local", cfg.Catalog.BaseURL)
	assert.Equal(t, 90, cfg.Simulation.Days)
	assert.Equal(t, 3, cfg.Simulation.RestockingFrequency)
	assert.InDelta(t, 0.35, cfg.Simulation.DemandVariability, 1e-12)
	assert.Equal(t, "/tmp/pipeline/superstore.xlsx", cfg.Dataset.ExcelFilePath)
	assert.True(t, cfg.Dataset.Download)
	assert.True(t, cfg.DB.Persist)
}

func TestLoad_RejectsInvalidSimulation(t *testing.T) {
	tests := map[string]string{
		"INVENTORY_SIMULATION_DAYS": "0",
		"RESTOCKING_FREQUENCY":      "-2",
		"DEMAND_VARIABILITY":        "1.5",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(key, value)
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_DownloadRequiresDataset(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DATASET_DOWNLOAD", "true")

	_, err := config.Load()
	assert.ErrorContains(t, err, "KAGGLE_DATASET_NAME")
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss", DBName: "retail", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss@db:5432/retail?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://other"
	assert.Equal(t, "postgres://other", c.ConnectionString())
}

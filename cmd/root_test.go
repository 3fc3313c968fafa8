package cmd

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlags_BindToUnderscoreConfigKeys(t *testing.T) {
	require.NoError(t, rootCmd.Flags().Set("pricing-provider", "http"))
	require.NoError(t, rootCmd.Flags().Set("allow-partial-options", "true"))
	require.NoError(t, rootCmd.Flags().Set("kafka-broker-list", "kafka:9092"))
	require.NoError(t, rootCmd.Flags().Set("cache-capacity", "250"))

	assert.Equal(t, "http", viper.GetString("pricing_provider"))
	assert.True(t, viper.GetBool("allow_partial_options"))
	assert.Equal(t, "kafka:9092", viper.GetString("kafka_broker_list"))
	assert.Equal(t, 250, viper.GetInt("cache_capacity"))
}

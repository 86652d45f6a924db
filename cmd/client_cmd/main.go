package main

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/meeray/market-go/cmd"
	"github.com/meeray/market-go/logconfig"
	"github.com/meeray/market-go/steemauth"
)

const (
	ENV_CONFIG_FILE_PATH = "MARKET_CONFIG"
)

func main() {
	// Set overall log level to Info
	logconfig.ConfigInfoLogger()

	// Tool to read environment variables
	viper.AutomaticEnv()

	// Accessing an environment variable of configuration file location.
	_config_file := viper.GetString(ENV_CONFIG_FILE_PATH)
	fmt.Printf("Market client configuration file = %s\n", _config_file)

	// See if file exists
	if !cmd.FileExists(_config_file) {
		fmt.Printf("Market client configuration file not found: %s\n", _config_file)
		return
	}

	// Read from config file.
	success := initializeViper(_config_file)
	if !success {
		return
	}

	// Make the configuration
	mcc := PrepareMarketClientConfig()
	if mcc == nil {
		fmt.Printf("Error loading market client configuration\n")
		return
	}

	fmt.Println("Starting market client... press Ctrl+C to kill the client")
	// Start client and block.
	cmd.StartMarketClientAndWait(mcc)
}

func initializeViper(filePath string) bool {
	viper.SetConfigFile(filePath)
	if err := viper.ReadInConfig(); err != nil {
		fmt.Printf("Error reading configuration file, %s", err)
		return false
	}
	return true
}

// PrepareMarketClientConfig reads configuration variables and returns a MarketClientConfig.
func PrepareMarketClientConfig() *cmd.MarketClientConfig {

	// *** prepare objects that aren't string type ***

	// The signer submits operations under the configured account.
	// The in-process signer covers local and demo runs; a production
	// deployment swaps in a keychain-backed implementation.
	signer := steemauth.NewSimSigner(viper.GetString("STEEM_USERNAME"))

	// *** end of preparing objects ***

	return &cmd.MarketClientConfig{
		// stream side
		StreamUrl: viper.GetString("STREAM_URL"),
		// signer side
		Signer: signer,
		// data side
		ApiBaseUrl: viper.GetString("API_BASE_URL"),
		DbFilePath: viper.GetString("DB_FILE_PATH"),
		// Http side
		HttpIp:   viper.GetString("HTTP_IP"),
		HttpPort: viper.GetString("HTTP_PORT"),
	}
}

package dbs

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/Semantics3/go-amazon-media/sources"
	ecstypes "github.com/Semantics3/go-amazon-media/sources/amazon/ecs/types"
	"github.com/Semantics3/go-amazon-media/types"
	"github.com/Semantics3/go-amazon-media/utils"
	"github.com/go-pg/pg"
)

const (
	defaultLocale = "US"
	defaultPort   = 4310
)

// ParseCliArgs will parse client command line arguments
func ParseCliArgs() (cliArgs *types.CliArgs) {
	return parseCliArgs(flag.CommandLine, os.Args[1:])
}

func parseCliArgs(fs *flag.FlagSet, args []string) (cliArgs *types.CliArgs) {
	env := fs.String("env", "staging", "Which config/<env>.json to load")
	rest := fs.Bool("rest", false, "Whether to expose lookups as a REST service")
	test := fs.Bool("test", false, "Whether to look up -asin from the command line")
	asin := fs.String("asin", "", "Comma separated ASINs to look up in test mode")
	locale := fs.String("locale", "", "Marketplace code, eg. US or UK")
	filterFile := fs.String("filter-file", "", "File whose [amazon] markers should be rendered")
	accessKey := fs.String("access-key", "", "Amazon access key (AMAZON_ACCESS_KEY wins)")
	secretKey := fs.String("secret-key", "", "Amazon secret key (AMAZON_SECRET_KEY wins)")
	associateTag := fs.String("associate-tag", "", "Amazon associate tag (AMAZON_ASSOCIATE_TAG wins)")
	port := fs.Int("port", 0, "Port of the REST service")

	fs.Parse(args)
	cliArgs = &types.CliArgs{
		Env:          *env,
		IsRestMode:   *rest,
		IsTestMode:   *test,
		ASINs:        *asin,
		Locale:       *locale,
		FilterFile:   *filterFile,
		AccessKey:    *accessKey,
		SecretKey:    *secretKey,
		AssociateTag: *associateTag,
		Port:         *port,
	}
	return cliArgs
}

// ReadConfigData decodes a config file and applies environment and cli
// overrides
func ReadConfigData(configFile string, cliArgs *types.CliArgs) (*types.ConfigData, error) {
	file, err := os.Open(configFile)
	if err != nil {
		return nil, fmt.Errorf("CONFIG_READ_ERR: %v", err)
	}
	defer file.Close()

	var configData types.ConfigData
	data := json.NewDecoder(file)
	if err = data.Decode(&configData); err != nil {
		return nil, fmt.Errorf("CONFIG_DECODE_ERR: %v", err)
	}
	configData.Env = cliArgs.Env
	configData.Args = cliArgs

	if cliArgs.Locale != "" {
		configData.Amazon.Locale = cliArgs.Locale
	}
	if err = applyAmazonEnv(&configData.Amazon); err != nil {
		return nil, err
	}
	if configData.Amazon.Locale == "" {
		configData.Amazon.Locale = defaultLocale
	}
	if cliArgs.Port != 0 {
		configData.Port = cliArgs.Port
	}
	if configData.Port == 0 {
		configData.Port = defaultPort
	}

	if addr := os.Getenv("REDIS_HOST_ADDR"); addr != "" {
		configData.RedisHost = addr
	}
	if host := os.Getenv("GLOBAL_DATADOG_HOST"); host != "" {
		configData.DatadogHost = host
	}
	if addr := os.Getenv("INFLUXDB_ADDR"); addr != "" {
		configData.Influx.Server = addr
	}
	if configData.PGItems != nil {
		if pass := os.Getenv("PG_ITEMS_PASS"); pass != "" {
			configData.PGItems.Password = pass
		}
		if addr := os.Getenv("PG_ITEMS_ADDR"); addr != "" {
			configData.PGItems.Addr = addr
		}
	}

	if err = configData.Amazon.Validate(); err != nil {
		return nil, err
	}
	return &configData, nil
}

// applyAmazonEnv overrides amazon settings from AMAZON_* variables. List
// settings are comma separated.
func applyAmazonEnv(ac *types.AmazonConfig) error {
	if locale := os.Getenv("AMAZON_LOCALE"); locale != "" {
		ac.Locale = locale
	}
	if version := os.Getenv("AMAZON_VERSION"); version != "" {
		ac.Version = version
	}
	if group := os.Getenv("AMAZON_RESPONSE_GROUP"); group != "" {
		ac.ResponseGroup = group
	}
	if roles := os.Getenv("AMAZON_PARTICIPANT_TYPES"); roles != "" {
		ac.ParticipantTypes = utils.SplitIDs(roles)
	}
	if sizes := os.Getenv("AMAZON_IMAGE_SIZES"); sizes != "" {
		ac.ImageSizes = utils.SplitIDs(sizes)
	}
	if endpoint := os.Getenv("AMAZON_ENDPOINT"); endpoint != "" {
		ac.Endpoint = endpoint
	}
	if val := os.Getenv("AMAZON_DEFAULT_MAX_AGE"); val != "" {
		maxAge := utils.GetIntPtr(val)
		if maxAge == nil {
			return fmt.Errorf("CONFIG_ENV_ERR: AMAZON_DEFAULT_MAX_AGE is not a number: %q", val)
		}
		ac.DefaultMaxAge = maxAge
	}
	return nil
}

// LoadConfig will appropriate config based on env
func LoadConfig(cliArgs *types.CliArgs) (appC *types.Config, err error) {
	env := cliArgs.Env
	log.Printf("CONFIG_LOAD: Loading %s configuration", env)
	configData, err := ReadConfigData(fmt.Sprintf("config/%s.json", env), cliArgs)
	if err != nil {
		log.Printf("Failed to load config data: %s\n", err)
		return appC, err
	}

	appC = &types.Config{
		ConfigData:  configData,
		Credentials: ResolveCredentials(configData, cliArgs),
	}

	if configData.DatadogHost != "" {
		appC.StatsdClient, err = statsd.New(configData.DatadogHost)
		if err != nil {
			return appC, fmt.Errorf("Creating statsd client failed with error %s", err)
		}
	}

	if configData.RedisHost != "" {
		appC.Redis = sources.NewRedisPool(configData.RedisHost)
	}

	if configData.PGItems != nil {
		appC.PGItems = pg.Connect(&pg.Options{
			User:     configData.PGItems.User,
			Password: configData.PGItems.Password,
			Database: configData.PGItems.DB,
			Addr:     configData.PGItems.Addr,
			PoolSize: configData.PGItems.PoolSize,
		})
	}
	return appC, nil
}

// ResolveCredentials - environment, then cli flags, then the config file
func ResolveCredentials(configData *types.ConfigData, cliArgs *types.CliArgs) ecstypes.Credentials {
	explicit := ecstypes.Credentials{}
	if cliArgs != nil {
		explicit = ecstypes.Credentials{
			AccessKeyID:  cliArgs.AccessKey,
			SecretKey:    cliArgs.SecretKey,
			AssociateTag: cliArgs.AssociateTag,
		}
	}
	stored := ecstypes.Credentials{
		AccessKeyID:  configData.Amazon.AccessKey,
		SecretKey:    configData.Amazon.SecretKey,
		AssociateTag: configData.Amazon.AssociateTag,
	}
	return ecstypes.ResolveCredentials(explicit, stored)
}

// Close releases the connections opened by LoadConfig
func Close(appC *types.Config) {
	if appC == nil {
		return
	}
	if appC.Redis != nil {
		appC.Redis.Close()
	}
	if appC.PGItems != nil {
		appC.PGItems.Close()
	}
	if appC.StatsdClient != nil {
		appC.StatsdClient.Close()
	}
}

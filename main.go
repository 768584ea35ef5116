package main

import (
	"context"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Semantics3/go-amazon-media/dbs"
	"github.com/Semantics3/go-amazon-media/filter"
	"github.com/Semantics3/go-amazon-media/service"
	"github.com/Semantics3/go-amazon-media/sources/amazon"
	"github.com/Semantics3/go-amazon-media/sources/amazon/ecs"
	ecstypes "github.com/Semantics3/go-amazon-media/sources/amazon/ecs/types"
	"github.com/Semantics3/go-amazon-media/types"
	"github.com/Semantics3/go-amazon-media/utils"
)

// VERSION specifies the release version during deployments
const VERSION = "1.0.0"

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup always happens
func run() int {

	log.Println("Starting amazon media: ", VERSION)

	// Parse CLI args
	cliArgs := dbs.ParseCliArgs()

	if strings.Contains(cliArgs.Env, "development") {
		log.SetFlags(0)
	}

	// Load configurations
	appC, err := dbs.LoadConfig(cliArgs)
	defer dbs.Close(appC)
	if err != nil {
		log.Printf("Loading configuration failed with error: %s", err)
		return 1
	}

	amz, err := dbs.NewAmazon(context.Background(), appC)
	if err != nil {
		log.Printf("AMAZON_INIT_ERR: %v\n", err)
		return 1
	}

	switch {
	case cliArgs.IsRestMode:
		log.Printf("AMAZON_SERVICE: Starting rest mode on port %d\n", appC.ConfigData.Port)
		handle := amz.NewHandle(ecs.MaxItemIDs, dbs.BatchWait(appC.ConfigData.Amazon))
		defer handle.Delete()
		service.StartWebService(appC, amz, handle)
	case cliArgs.FilterFile != "":
		if err = filterFile(appC, amz, cliArgs.FilterFile); err != nil {
			return 1
		}
	case cliArgs.IsTestMode:
		if err = lookupTest(appC, amz, cliArgs); err != nil {
			return 1
		}
	default:
		log.Println("AMAZONCLI_ERR: one of -rest, -test or -filter-file is required")
		return 2
	}
	return 0
}

func cliLocale(appC *types.Config) (ecstypes.Locale, error) {
	return ecstypes.NewLocale(appC.ConfigData.Amazon.Locale)
}

// Look up the ASINs given with -asin and print what came back
func lookupTest(appC *types.Config, amz *amazon.Amazon, cliArgs *types.CliArgs) error {
	asins := utils.SplitIDs(cliArgs.ASINs)
	if len(asins) == 0 {
		return utils.PrintErr("AMAZONCLI_ASIN_ERR", "no asin sent", nil)
	}
	locale, err := cliLocale(appC)
	if err != nil {
		return utils.PrintErr("AMAZONCLI_LOCALE_ERR", appC.ConfigData.Amazon.Locale, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	items, err := amz.Lookup(ctx, locale, asins)
	if err != nil {
		log.Printf("AMAZONCLI_LOOKUP_ERR: %v\n", err)
	}
	for _, asin := range asins {
		item, ok := items[asin]
		if !ok {
			log.Printf("AMAZONCLI_MISSING: %s not returned\n", asin)
			continue
		}
		utils.PrettyJSON(asin, item, true)
	}
	if items == nil {
		return err
	}
	return nil
}

// Render the markers of a file to stdout
func filterFile(appC *types.Config, amz *amazon.Amazon, path string) error {
	content, err := ioutil.ReadFile(path)
	if err != nil {
		return utils.PrintErr("AMAZONCLI_FILE_ERR", fmt.Sprintf("failed to read file %s", path), err)
	}
	locale, err := cliLocale(appC)
	if err != nil {
		return utils.PrintErr("AMAZONCLI_LOCALE_ERR", appC.ConfigData.Amazon.Locale, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	res, err := filter.New(amz, locale, appC.ConfigData.Amazon.MaxAge()).Process(ctx, string(content))
	if err != nil {
		log.Printf("AMAZONCLI_FILTER_ERR: %v\n", err)
	}
	log.Printf("AMAZONCLI_MAX_AGE: %d\n", res.MaxAge)
	fmt.Println(res.Text)
	return nil
}

// Command seed imports the fixture products (or a CSV file) into the
// configured store, or removes every product with --destroy.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rogerio-castellano/product-catalog/internal/config"
	"github.com/rogerio-castellano/product-catalog/internal/db"
	"github.com/rogerio-castellano/product-catalog/internal/models"
	"github.com/rogerio-castellano/product-catalog/internal/obs"
	"github.com/rogerio-castellano/product-catalog/internal/seed"
	"github.com/spf13/pflag"
)

var openStore = db.OpenProductStore

func main() {
	if err := run(os.Args[1:]); err != nil {
		obs.Logger.Error("seed_failed", "error", err)
		os.Exit(1)
	}
}

// run owns every deferred cleanup so that main can exit non-zero after they ran.
func run(args []string) (err error) {
	flags := pflag.NewFlagSet("seed", pflag.ExitOnError)
	flags.BoolP("destroy", "d", false, "delete every product instead of importing fixtures")
	flags.StringP("file", "f", "", "CSV file to import instead of the built-in fixtures")
	flags.String("store-driver", "", "override STORE_DRIVER (mongo, postgres, memory)")
	_ = flags.Parse(args)

	v := config.NewViper()
	_ = v.BindPFlag("DESTROY", flags.Lookup("destroy"))
	_ = v.BindPFlag("SEED_FILE", flags.Lookup("file"))
	if f := flags.Lookup("store-driver"); f.Changed {
		_ = v.BindPFlag("STORE_DRIVER", f)
	}

	cfg, err := config.LoadFrom(v)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	obs.InitLogger(cfg.LogLevel)

	ctx := context.Background()
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect %s store: %w", cfg.StoreDriver, err)
	}
	defer func() {
		if cerr := closeStore(ctx); cerr != nil {
			obs.Logger.Error("store_close_failed", "driver", cfg.StoreDriver, "error", cerr)
			if err == nil {
				err = fmt.Errorf("close store: %w", cerr)
			}
		}
	}()

	if v.GetBool("DESTROY") {
		if err := seed.Destroy(ctx, store); err != nil {
			return fmt.Errorf("destroy data: %w", err)
		}
		obs.Logger.Info("data_destroyed", "driver", cfg.StoreDriver)
		return nil
	}

	products := seed.Products()
	if path := v.GetString("SEED_FILE"); path != "" {
		products, err = readCSV(path)
		if err != nil {
			return fmt.Errorf("read seed file %s: %w", path, err)
		}
	}

	created, err := seed.Import(ctx, store, products)
	if err != nil {
		return fmt.Errorf("import data: %w", err)
	}
	for _, p := range created {
		obs.Logger.Info("product_imported", "id", p.ID, "name", p.Name)
	}
	obs.Logger.Info("data_imported", "driver", cfg.StoreDriver, "count", len(created))
	return nil
}

func readCSV(path string) ([]models.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return seed.ParseCSV(f)
}

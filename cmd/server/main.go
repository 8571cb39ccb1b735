package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/shopscout/backend/config"
	httpDelivery "github.com/shopscout/backend/internal/delivery/http"
	"github.com/shopscout/backend/internal/domain"
	"github.com/shopscout/backend/internal/infrastructure/cache"
	"github.com/shopscout/backend/internal/infrastructure/fetch"
	"github.com/shopscout/backend/internal/infrastructure/gemini"
	"github.com/shopscout/backend/internal/usecase"
)

func main() {
	// Load .env before viper reads the environment
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting ShopScout Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Gemini model: %s", cfg.Gemini.Model)

	// Initialize infrastructure dependencies
	var productCache domain.ProductCache
	if cfg.Cache.Type == "memory" {
		memoryCache := cache.NewMemoryCache()
		defer memoryCache.Stop()
		productCache = memoryCache
		log.Printf("Scrape cache enabled, TTL: %s", cfg.Cache.TTL)
	} else {
		log.Printf("Scrape cache disabled")
	}

	pageFetcher := fetch.NewClient(cfg.Scraper.ScrapeTimeout)
	searchFetcher := fetch.NewClient(cfg.Scraper.SearchTimeout)
	generator := gemini.NewClient(cfg.Gemini.APIKey, cfg.Gemini.BaseURL, cfg.Gemini.Model, cfg.Gemini.Timeout)

	// Initialize usecase layer
	extractor := usecase.NewExtractor()
	searcher := usecase.NewSearcher(searchFetcher, usecase.SearcherConfig{
		PlatformDelay:  cfg.Scraper.PlatformDelay,
		MaxPerPlatform: cfg.Scraper.MaxPerPlatform,
	})
	products := usecase.NewProductService(
		pageFetcher,
		extractor,
		searcher,
		generator,
		productCache,
		usecase.ProductServiceConfig{CacheTTL: cfg.Cache.TTL},
	)

	// Initialize delivery layer
	handler := httpDelivery.NewHandler(products)
	router := httpDelivery.SetupRouter(cfg, handler)

	log.Printf("Listening on :%s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

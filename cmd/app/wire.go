//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/outfit-concierge/internal/bootstrap"
	"github.com/yanqian/outfit-concierge/internal/domain/color"
	"github.com/yanqian/outfit-concierge/internal/domain/dayplan"
	"github.com/yanqian/outfit-concierge/internal/domain/mood"
	"github.com/yanqian/outfit-concierge/internal/domain/stylist"
	"github.com/yanqian/outfit-concierge/internal/domain/taxonomy"
	"github.com/yanqian/outfit-concierge/internal/domain/wardrobe"
	"github.com/yanqian/outfit-concierge/internal/infra/config"
	httpiface "github.com/yanqian/outfit-concierge/internal/interface/http"
	"github.com/yanqian/outfit-concierge/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		taxonomy.Default,
		color.NewEngine,
		mood.NewCatalog,
		provideStylistConfig,
		providePostgresPool,
		provideWardrobeRepository,
		provideEmbedder,
		provideSimilarityIndex,
		provideImageStore,
		provideEventRecorder,
		provideForecastProvider,
		provideAgendaProvider,
		wardrobe.NewService,
		stylist.NewService,
		dayplan.NewService,
		provideHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}

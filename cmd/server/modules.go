package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/RockeTall/CheckMate-demo/internal/api"
	"github.com/RockeTall/CheckMate-demo/internal/config"
	"github.com/RockeTall/CheckMate-demo/internal/infrastructure"
	"github.com/RockeTall/CheckMate-demo/pkg/middleware"
	"github.com/RockeTall/CheckMate-demo/pkg/module"
	"github.com/RockeTall/CheckMate-demo/pkg/openapi"
	"github.com/RockeTall/CheckMate-demo/web/scalar"
)

type Modules struct {
	API    *module.Module
	Scalar *module.Module

	spec []byte
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	spec, err := openapi.MarshalJSON(api.BuildSpec(cfg))
	if err != nil {
		return nil, fmt.Errorf("marshal openapi spec: %w", err)
	}

	scalarModule := scalar.NewModule("/scalar", "/openapi.json")
	scalarModule.Use(middleware.Logger(infra.Logger))

	return &Modules{
		API:    apiModule,
		Scalar: scalarModule,
		spec:   spec,
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.Scalar)
	router.HandleNative("GET /openapi.json", openapi.ServeSpec(m.spec))
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "not ready"})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
	})

	return router
}

package assistants

import (
	"github.com/cockroachdb/errors"
	"github.com/effective-security/toolhost/backends/fabric"
	"github.com/effective-security/toolhost/backends/kvlookup"
	"github.com/effective-security/toolhost/backends/websearch"
	"github.com/effective-security/toolhost/config"
	"github.com/effective-security/toolhost/scanner"
	"github.com/effective-security/toolhost/services"
	"github.com/effective-security/xlog"
)

// NewFromConfig returns the host with the backends of the configuration.
// When the data agent is configured, its service is pre-wired
// and the static query tool is added.
// Tools are not loaded, call LoadTools with cfg.Tools.
func NewFromConfig(cfg *config.Config) (*Assistant, error) {
	if cfg == nil {
		return nil, errors.New("configuration is not provided")
	}

	catalog := services.NewCatalog()
	a := NewAssistant(catalog).
		WithScanner(scanner.New(scanner.WithExtension(cfg.Tools.Extension)))

	kvlookup.Register(catalog, a.Cache(), cfg.Redis)
	websearch.Register(catalog, cfg.WebSearch)

	if cfg.Fabric == nil {
		// the service is constructed from the environment on first use
		fabric.Register(catalog, nil)
	} else {
		svc, err := fabric.New(cfg.Fabric)
		if err != nil {
			return nil, errors.WithMessage(err, "failed to create data agent service")
		}
		qt, err := fabric.NewQueryTool(svc)
		if err != nil {
			return nil, err
		}
		a.WithService(services.ServiceAttr(fabric.ToolName), svc).
			WithTools(qt)
	}

	logger.KV(xlog.INFO,
		"status", "created",
		"assistant", a.Name(),
		"services", a.ServiceNames(),
		"catalog", catalog.Names(),
		"tools", a.Tools().Names(),
	)
	return a, nil
}

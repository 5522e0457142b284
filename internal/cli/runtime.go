package cli

import (
	"fmt"
	"os"
	"sync"

	"github.com/miradorhq/mirador/internal/audit"
	"github.com/miradorhq/mirador/internal/common/httpclient"
	"github.com/miradorhq/mirador/internal/common/session"
	"github.com/miradorhq/mirador/internal/surveyapi"
)

// runtime bundles the session store, gateway client, domain facades and
// the audit emitter for the lifetime of a single command invocation.
type runtime struct {
	Store  session.Store
	Client *httpclient.HTTPClient

	Auth    *surveyapi.AuthAPI
	Users   *surveyapi.UsersAPI
	Process *surveyapi.ProcessAPI
	Stats   *surveyapi.StatisticsAPI
	Agent   *surveyapi.AgentAPI
	Reports *surveyapi.ReportsAPI
	Audits  *surveyapi.AuditAPI
	Health  *surveyapi.HealthAPI

	Audit *audit.Emitter
}

var (
	rtMu sync.Mutex
	rt   *runtime
)

// getRuntime builds the command runtime on first use: loads config, opens
// the session file, and wires the gateway client, facades and audit
// emitter together.
func getRuntime() (*runtime, error) {
	rtMu.Lock()
	defer rtMu.Unlock()

	if rt != nil {
		return rt, nil
	}

	if err := LoadConfig(configFile); err != nil {
		return nil, err
	}
	cfg := GetConfig()

	store, err := session.NewFileStore("")
	if err != nil {
		return nil, fmt.Errorf("unable to open session store: %w", err)
	}

	client := httpclient.NewClient(cfg.Endpoints(), store)
	client.OnAuthExpired(func() {
		warnLabel.Fprintln(os.Stderr, "Session expired. Run 'mirador login' to sign in again.")
	})

	auditAPI := surveyapi.NewAuditAPI(client)

	rt = &runtime{
		Store:   store,
		Client:  client,
		Auth:    surveyapi.NewAuthAPI(client, store),
		Users:   surveyapi.NewUsersAPI(client),
		Process: surveyapi.NewProcessAPI(client),
		Stats:   surveyapi.NewStatisticsAPI(client),
		Agent:   surveyapi.NewAgentAPI(client),
		Reports: surveyapi.NewReportsAPI(client),
		Audits:  auditAPI,
		Health:  surveyapi.NewHealthAPI(client),
		Audit:   audit.NewEmitter(auditAPI),
	}
	return rt, nil
}

// currentRuntime returns the runtime if one was built during this
// invocation, without building one. Used at exit to flush audit events.
func currentRuntime() *runtime {
	rtMu.Lock()
	defer rtMu.Unlock()
	return rt
}

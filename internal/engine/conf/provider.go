package conf

import (
	"github.com/google/wire"

	"github.com/earthcare/network/internal/engine/service"
	"github.com/earthcare/network/pkg/cache"
	"github.com/earthcare/network/pkg/database"
	httpx "github.com/earthcare/network/pkg/http"
	"github.com/earthcare/network/pkg/trace"
)

// ProviderSet 提供配置相关的依赖
var ProviderSet = wire.NewSet(
	ProvideConf,
	ProvideHttpConf,
	ProvideDatabaseConf,
	ProvideRedisConf,
	ProvideTraceConf,
	ProvideLeadScoreConf,
	ProvideAuthConf,
)

// ProvideConf 提供完整配置实例
func ProvideConf(configFile string) AppConfig {
	return NewConf(configFile)
}

func ProvideHttpConf(appConf AppConfig) httpx.Http {
	return appConf.Http
}

func ProvideDatabaseConf(appConf AppConfig) database.Database {
	return appConf.Database
}

func ProvideRedisConf(appConf AppConfig) cache.Redis {
	return appConf.Redis
}

func ProvideTraceConf(appConf AppConfig) trace.TraceConfig {
	return appConf.Trace
}

func ProvideLeadScoreConf(appConf AppConfig) service.LeadScoreConf {
	return appConf.LeadScore
}

func ProvideAuthConf(appConf AppConfig) httpx.Auth {
	return appConf.Http.Auth
}

package router

import (
	"github.com/google/wire"
)

// ProviderSet 提供 router 依赖
var ProviderSet = wire.NewSet(NewRouter)

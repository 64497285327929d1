package repo

import (
	"github.com/google/wire"
)

// ProviderSet 提供 repository 依赖
var ProviderSet = wire.NewSet(
	NewEnterpriseRepo,
	NewContactRepo,
	NewInvitationRepo,
	NewClaimRepo,
	NewMembershipRepo,
	NewUserRepo,
	NewOpportunityRepo,
	NewTaskRepo,
	NewSubscriptionRepo,
)

package service

import (
	"github.com/google/wire"
)

// ProviderSet 提供 service 依赖
var ProviderSet = wire.NewSet(
	NewClaimService,
	NewInvitationService,
	NewTeamService,
	NewEnterpriseService,
	NewContactService,
	NewOpportunityService,
	NewTaskService,
	NewAuthService,
	NewLeadScoreService,
	NewSweeperService,
)

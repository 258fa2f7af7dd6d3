package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/ougirez/eracalc/internal/pkg/constants"
	"github.com/ougirez/eracalc/internal/pkg/logger"
	"github.com/ougirez/eracalc/internal/pkg/utils"
)

type Service struct {
	secret string
}

func NewAuthService(secret string) *Service {
	return &Service{secret: secret}
}

// IssueGameMasterToken signs a console token admitting gameMaster to the
// admin routes.
func (svc *Service) IssueGameMasterToken(ctx context.Context, gameMaster string) (string, error) {
	gameMaster = strings.TrimSpace(gameMaster)
	if gameMaster == "" {
		return "", fmt.Errorf("empty game master name: %w", constants.ErrInvalidArgument)
	}

	token, err := utils.GenerateAuthToken(&utils.AuthTokenWrapper{GameMaster: gameMaster}, svc.secret)
	if err != nil {
		return "", err
	}

	logger.Debugf(ctx, "issued token for game master [%v]", gameMaster)

	return token, nil
}

// Verify returns the game master a token was issued to.
func (svc *Service) Verify(token string) (string, error) {
	wrapper, err := utils.ParseAuthToken(token, svc.secret)
	if err != nil {
		return "", err
	}
	return wrapper.GameMaster, nil
}

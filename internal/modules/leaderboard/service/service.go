package service

import (
	"context"
	"fmt"

	"github.com/Goodnessmbakara/skillsverse/internal/modules/leaderboard/dto"
	userRepository "github.com/Goodnessmbakara/skillsverse/internal/modules/user/repository"
)

type LeaderboardService interface {
	GetLeaderboard(ctx context.Context, query dto.LeaderboardQuery) ([]dto.LeaderboardEntry, error)
}

type leaderboardService struct {
	userRepo userRepository.UserRepository
}

func NewLeaderboardService(userRepo userRepository.UserRepository) LeaderboardService {
	return &leaderboardService{userRepo: userRepo}
}

func (s *leaderboardService) GetLeaderboard(ctx context.Context, query dto.LeaderboardQuery) ([]dto.LeaderboardEntry, error) {
	limit := query.Limit
	if limit < 1 {
		limit = dto.DefaultLimit
	}
	limit = min(limit, dto.MaxLimit)

	users, err := s.userRepo.TopByReputation(ctx, limit, query.Type)
	if err != nil {
		return nil, fmt.Errorf("failed to rank users: %w", err)
	}

	entries := make([]dto.LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, dto.LeaderboardEntry{
			Position:   i + 1,
			UserID:     u.ID,
			Username:   u.Username,
			Name:       u.Name,
			Avatar:     u.Avatar,
			Type:       u.Type,
			Reputation: u.Reputation,
			Tier:       TierFor(u.Reputation),
		})
	}
	return entries, nil
}

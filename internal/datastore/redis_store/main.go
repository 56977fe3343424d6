package redis_store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"

	"starbyte/internal/models"
)

const (
	DELIVERY_TTL = 24 * time.Hour
)

var ErrDeliveryExists = errors.New("delivery already stored")

func dbKeyLeaderboard(board string) string {
	return fmt.Sprintf("leaderboard:%s", board)
}

func dbKeyLeaderboardRebuild(board string) string {
	return fmt.Sprintf("leaderboard:%s:rebuild", board)
}

func dbKeyReceiptDelivery(receiptID string) string {
	return fmt.Sprintf("receipt:%s:delivery", receiptID)
}

func SetLeaderboard(ctx context.Context, cmd redis.Cmdable, board string, v *models.LeaderboardItem) (*models.LeaderboardItem, error) {
	err := cmd.ZAdd(ctx, dbKeyLeaderboard(board), redis.Z{
		Score:  v.Score,
		Member: v.StarID,
	}).Err()
	if err != nil {
		return nil, err
	}

	return v, nil
}

// SetLeaderboardBatch writes a page of scores into the rebuild set.
func SetLeaderboardBatch(ctx context.Context, cmd redis.Cmdable, board string, items []*models.LeaderboardItem) error {
	if len(items) == 0 {
		return nil
	}

	members := make([]redis.Z, len(items))
	for i, item := range items {
		members[i] = redis.Z{Score: item.Score, Member: item.StarID}
	}
	return cmd.ZAdd(ctx, dbKeyLeaderboardRebuild(board), members...).Err()
}

// SwapLeaderboard publishes the rebuild set as the live leaderboard.
func SwapLeaderboard(ctx context.Context, cmd redis.Cmdable, board string) error {
	n, err := cmd.Exists(ctx, dbKeyLeaderboardRebuild(board)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		// nothing was rebuilt, the board is empty
		return cmd.Del(ctx, dbKeyLeaderboard(board)).Err()
	}
	return cmd.Rename(ctx, dbKeyLeaderboardRebuild(board), dbKeyLeaderboard(board)).Err()
}

func GetLeaderboard(ctx context.Context, cmd redis.Cmdable, board string, num int) ([]*models.LeaderboardItem, error) {
	if num <= 0 {
		return []*models.LeaderboardItem{}, nil
	}

	items, err := cmd.ZRevRangeWithScores(ctx, dbKeyLeaderboard(board), 0, int64(num-1)).Result()
	if err != nil {
		return nil, err
	}

	results := make([]*models.LeaderboardItem, 0, len(items))
	for i, item := range items {
		id, _ := item.Member.(string)
		results = append(results, &models.LeaderboardItem{
			StarID: id,
			Score:  item.Score,
			Rank:   i + 1,
		})
	}

	return results, nil
}

// GetRankWithScore returns the zero-based rank of starID, redis.Nil when the
// star is not on the board.
func GetRankWithScore(ctx context.Context, cmd redis.Cmdable, board string, starID string) (redis.RankScore, error) {
	return cmd.ZRevRankWithScore(ctx, dbKeyLeaderboard(board), starID).Result()
}

func SaveDelivery(ctx context.Context, cmd redis.Cmdable, v *models.StoredDelivery) error {
	if v.ReceiptID == "" || v.Delivery == nil {
		return errors.New("invalid delivery")
	}

	b, err := msgpack.Marshal(v)
	if err != nil {
		return err
	}

	// a receipt keeps the first delivery stored for it
	ok, err := cmd.SetNX(ctx, dbKeyReceiptDelivery(v.ReceiptID), b, DELIVERY_TTL).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrDeliveryExists
	}
	return nil
}

func GetDelivery(ctx context.Context, cmd redis.Cmdable, receiptID string) (*models.StoredDelivery, error) {
	b, err := cmd.Get(ctx, dbKeyReceiptDelivery(receiptID)).Bytes()
	if err != nil {
		return nil, err
	}

	var v models.StoredDelivery
	if err := msgpack.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

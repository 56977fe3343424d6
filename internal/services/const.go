package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrCheckoutLock = errors.New("checkout already in progress")
var ErrReceiptNotOwned = errors.New("receipt belongs to another star")
var ErrInvalidID = errors.New("invalid id")

const (
	CONFIG_STARDUST_LEADERBOARD_LIMIT = "STARDUST_LEADERBOARD_LIMIT"
	CONFIG_CRONJOB_TIME_LEADERBOARD   = "CRONJOB_TIME_LEADERBOARD"

	LEADERBOARD_STARDUST = "stardust"

	STARDUST_LEADERBOARD_DEFAULT_LIMIT = 20
	CHECKOUT_DEFAULT_RATE_PER_MINUTE   = 10
	DEFAULT_PAGE_LIMIT                 = 20
	MAX_PAGE_LIMIT                     = 100

	DEFAULT_FETCH_TIMEOUT = 10 * time.Second
	// room for everything in a checkout besides the fetch, the receipt mail included
	CHECKOUT_LOCK_MARGIN = 30 * time.Second

	CACHE_TTL_5_SECONDS  = 5 * time.Second
	CACHE_TTL_15_SECONDS = 15 * time.Second
	CACHE_TTL_1_MIN      = 1 * time.Minute
	CACHE_TTL_5_MINS     = 5 * time.Minute
	CACHE_TTL_15_MINS    = 15 * time.Minute
	CACHE_TTL_1_HOUR     = 1 * time.Hour

	RECEIPT_SUBJECT   = "Your Starbyte Receipt"
	RECEIPT_FROM_NAME = "Starbyte"
	RECEIPT_LOGO_CID  = "logo-starbyte-receipt.png"
	RECEIPT_LOGO_PATH = "/icons/icon512_maskable.png"

	MESSAGE_RECEIPT_SENT      = "Receipt email sent."
	MESSAGE_RECEIPT_FAILED    = "Failed to send receipt email."
	MESSAGE_EMAIL_REQUIRED    = "Email address is required"
	MESSAGE_EMAIL_INVALID     = "Invalid email address format"
	MESSAGE_NO_FETCH_URL      = "No fetch URL provided"
	MESSAGE_FETCH_PROCESSED   = "Fetch processed"
	MESSAGE_FETCH_FAILED      = "Fetch failed"
	MESSAGE_PURCHASE_FAILED   = "Purchase failed"
	MESSAGE_UNKNOWN_DELIVERY  = "Unknown delivery type"
	MESSAGE_INVALID_PURCHASE  = "Invalid purchase"
	MESSAGE_RESOLVE_EXCEPTION = "Unexpected error while resolving delivery"
)

func LockKeyStarCheckout(starID string) string {
	return fmt.Sprintf("lock:star-checkout:%s", starID)
}

func LimitKeyStarCheckout(starID string) string {
	return fmt.Sprintf("limit:star-checkout:%s", starID)
}

// db
func DBKeyConfig(key string) string {
	return fmt.Sprintf("config:%s", strings.ToLower(key))
}

func DBKeyStar(starID string) string {
	return fmt.Sprintf("star:%s", starID)
}

func DBKeyReward(rewardID string) string {
	return fmt.Sprintf("reward:%s", rewardID)
}

func DBKeyRewards(page, limit int) string {
	return fmt.Sprintf("rewards:active:%d:%d", page, limit)
}

func DBKeyRewardsPattern() string {
	return "rewards:active:*"
}

func DBKeyLeaderboardByStar(name string, starID string, limit int) string {
	return fmt.Sprintf("leaderboard_by_star:%s:%s:%d", strings.ToLower(name), starID, limit)
}

// CheckoutLockExpiry outlives the slowest fetch a checkout may wait for.
func CheckoutLockExpiry(fetchTimeout time.Duration) time.Duration {
	if fetchTimeout <= 0 {
		fetchTimeout = DEFAULT_FETCH_TIMEOUT
	}
	return fetchTimeout + CHECKOUT_LOCK_MARGIN
}

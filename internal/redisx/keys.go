package redisx

import "time"

const (
	// Password reset: reset_token:{token} -> user_id
	KeyResetToken = "reset_token:%s"

	// Cache order status: order_status:{order_id} -> status string
	KeyOrderStatus = "order_status:%s"
)

var TTLStatusCache = 5 * time.Minute

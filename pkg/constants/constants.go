package constants

const (
	RELAY_CHANNEL_SIZE         = 100 // 转发任务通道大小
	MESSAGE_LIST_LIMIT         = 200 // 历史消息单次查询上限
	REDIS_TIMEOUT              = 1   // redis timeout (分钟)
	TELEGRAM_TIMEOUT_SECONDS   = 8   // Telegram / 内部 API 调用超时（秒）
	REFRESH_TOKEN_EXPIRY_HOURS = 168 // Refresh Token 有效期（小时），168小时 = 7天
)

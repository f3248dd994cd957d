// Package source_enum 消息来源枚举
package source_enum

const (
	Web           = "web"            // Web 端发送
	TelegramGroup = "telegram_group" // Telegram 群内机器人解析
)

// Package model 定义数据库实体模型
// 本文件定义消息模型，用于存储两人会话消息
package model

import (
	"gorm.io/gorm"
)

// Message 消息模型
// 对应数据库 message 表
// 主键 ID 即消息序号：自增、随插入顺序严格递增，历史查询始终按它升序排列
type Message struct {
	gorm.Model

	// SendId 发送者 UUID
	SendId string `gorm:"column:send_id;index;type:char(20);not null;comment:发送者uuid"`

	// ReceiveId 接收者 UUID
	ReceiveId string `gorm:"column:receive_id;index;type:char(20);not null;comment:接收者uuid"`

	// Content 消息文本内容，入库前已去除首尾空白且非空
	Content string `gorm:"column:content;type:TEXT;not null;comment:消息内容"`

	// Source 消息来源，"web" 或 "telegram_group"
	Source string `gorm:"column:source;type:char(20);not null;default:web;comment:消息来源"`
}

// TableName 指定表名
func (Message) TableName() string {
	return "message"
}

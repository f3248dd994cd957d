package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"bridge_chat_server/internal/bot"
	"bridge_chat_server/internal/config"
	dao "bridge_chat_server/internal/dao/mysql"
	myredis "bridge_chat_server/internal/dao/redis"
	"bridge_chat_server/internal/gateway/websocket"
	"bridge_chat_server/internal/handler"
	"bridge_chat_server/internal/https_server"
	"bridge_chat_server/internal/infrastructure/logger"
	"bridge_chat_server/internal/infrastructure/relay"
	"bridge_chat_server/internal/infrastructure/telegram"
	"bridge_chat_server/internal/service"
	"bridge_chat_server/pkg/util/jwt"

	"go.uber.org/zap"
)

func main() {
	// 1. 加载配置
	conf := config.GetConfig()

	// 2. 初始化日志
	if err := logger.Init(&conf.LogConfig, "dev"); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	zap.L().Info("日志初始化成功")

	// 3. 初始化 validator 翻译器
	if err := handler.InitTrans("zh"); err != nil {
		zap.L().Fatal("validator 翻译器初始化失败", zap.Error(err))
	}

	// 4. 初始化数据库
	repos := dao.Init()
	zap.L().Info("数据库初始化成功")

	// 5. 初始化 Redis
	myredis.Init()
	zap.L().Info("Redis 初始化成功")

	// 6. 初始化 JWT
	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry, conf.JWTConfig.RefreshTokenExpiry)
	zap.L().Info("JWT 初始化成功")

	// 7. 初始化 Telegram 客户端与转发通道
	tgClient := telegram.NewClient(&conf.TelegramConfig)
	if !tgClient.Configured() {
		zap.L().Warn("Telegram 未配置，群转发处于惰性状态")
	}

	var sink relay.Sink
	if conf.RelayConfig.Mode == "kafka" {
		sink = relay.NewKafkaSink(tgClient)
		zap.L().Info("转发通道初始化成功", zap.String("mode", "kafka"))
	} else {
		sink = relay.NewChannelSink(tgClient, 4)
		zap.L().Info("转发通道初始化成功", zap.String("mode", "channel"))
	}

	// 8. 初始化 WebSocket 网关与 Service 层
	hub := websocket.NewHub()
	service.InitServices(repos, sink, hub)
	zap.L().Info("Service 层初始化成功")

	// 9. 初始化 HTTP 服务器
	handlers := handler.NewHandlers(service.Svc, hub)
	engine := https_server.Init(handlers)
	zap.L().Info("HTTP 服务器初始化成功")

	go func() {
		addr := fmt.Sprintf("%s:%d", conf.MainConfig.Host, conf.MainConfig.Port)
		if err := engine.Run(addr); err != nil {
			zap.L().Fatal("server running fault", zap.Error(err))
		}
	}()

	// 10. 启动群内机器人轮询（可选）
	botCtx, stopBot := context.WithCancel(context.Background())
	if conf.BotConfig.Enabled {
		poller := bot.NewPoller(tgClient, bot.NewApiClient(conf.BotConfig.ApiUrl), conf.TelegramConfig.PollTimeout)
		go poller.Run(botCtx)
		zap.L().Info("机器人轮询启动成功")
	}

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("关闭服务器...")
	stopBot()
	sink.Close()
	hub.Close()
	zap.L().Info("服务器已关闭")
}

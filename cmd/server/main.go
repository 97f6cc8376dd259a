package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"engagement-service/internal/adapters/langflow"
	"engagement-service/internal/api"
	"engagement-service/internal/config"
	"engagement-service/internal/logger"
	"engagement-service/internal/metrics"
	"engagement-service/internal/registry"
	"engagement-service/internal/services"
	"engagement-service/internal/storage"
)

func main() {
	// 加载配置(.env、YAML、环境变量)
	cfg, err := config.Load()

	log, logErr := logger.InitLogger("engagement-service")
	if logErr != nil {
		panic("初始化日志系统失败: " + logErr.Error())
	}
	if err != nil {
		log.Fatal("加载配置失败: %v", err)
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化数据源
	source, err := storage.NewSource(cfg)
	if err != nil {
		log.Fatal("初始化数据源失败: %v", err)
	}
	defer source.Close()
	log.Info("已初始化互动数据源: %s", cfg.RecordSource)

	// 初始化流程服务客户端
	flowClient := langflow.NewClient(langflow.Config{
		BaseURL:    cfg.Langflow.BaseURL,
		LangflowID: cfg.Langflow.LangflowID,
		FlowID:     cfg.Langflow.FlowID,
		Token:      cfg.FlowToken(),
	}, nil)

	router := api.NewRouter(api.Dependencies{
		EngagementService: services.NewEngagementService(source, log),
		FlowService:       services.NewFlowService(flowClient, log),
		Metrics:           metrics.New(),
		Logger:            log,
	})

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	var registrar *registry.Registrar
	port, portErr := registry.ParsePort(cfg.Server.Port)
	if cfg.Nacos.Enable && portErr != nil {
		log.Error("跳过Nacos注册: %v", portErr)
	} else if cfg.Nacos.Enable {
		registrar, err = registry.NewRegistrar(cfg.Nacos, log)
		if err != nil {
			log.Error("初始化Nacos客户端失败: %v", err)
		} else {
			if err := registrar.Register(port, 5*time.Second); err != nil {
				log.Error("注册服务到Nacos失败: %v", err)
				registrar = nil
			} else {
				log.Info("已注册到Nacos，服务名: %s, 端口: %d", cfg.Nacos.ServiceName, port)
			}
		}
	}

	go func() {
		log.Info("互动统计服务已启动，端口: %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("监听错误: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("正在关闭互动统计服务...")

	if registrar != nil {
		if err := registrar.Deregister(); err != nil {
			log.Error("从Nacos注销服务失败: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("服务器关闭错误: %v", err)
	}

	log.Info("互动统计服务已关闭")
}

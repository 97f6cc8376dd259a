package registry

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/nacos-group/nacos-sdk-go/v2/clients"
	"github.com/nacos-group/nacos-sdk-go/v2/clients/naming_client"
	"github.com/nacos-group/nacos-sdk-go/v2/common/constant"
	"github.com/nacos-group/nacos-sdk-go/v2/vo"

	"engagement-service/internal/config"
	"engagement-service/internal/logger"
)

// Registrar Nacos服务注册
type Registrar struct {
	config       config.NacosConfig
	namingClient naming_client.INamingClient
	logger       logger.Logger
	ip           string
	port         uint64
	stop         chan struct{}
}

// ParseServerAddrs 解析以逗号分隔的Nacos地址
func ParseServerAddrs(addrs string) ([]constant.ServerConfig, error) {
	parts := strings.Split(addrs, ",")
	serverConfigs := make([]constant.ServerConfig, 0, len(parts))

	for _, addr := range parts {
		addr = strings.TrimSpace(addr)
		host, portStr, err := net.SplitHostPort(addr)
		if err != nil {
			return nil, fmt.Errorf("无效的服务器地址格式: %s", addr)
		}
		port, err := strconv.ParseUint(portStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("无效的端口号: %s", portStr)
		}
		serverConfigs = append(serverConfigs, constant.ServerConfig{
			IpAddr: host,
			Port:   port,
		})
	}

	return serverConfigs, nil
}

// ParsePort 解析服务端口，非数字或超出范围时返回错误
func ParsePort(s string) (int, error) {
	port, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || port <= 0 || port > 65535 {
		return 0, fmt.Errorf("无效的服务端口: %q", s)
	}
	return port, nil
}

// NewRegistrar 创建Nacos服务注册器
func NewRegistrar(cfg config.NacosConfig, log logger.Logger) (*Registrar, error) {
	if cfg.NamespaceID == "" {
		cfg.NamespaceID = "public"
	}
	if cfg.Group == "" {
		cfg.Group = "DEFAULT_GROUP"
	}
	if cfg.LogDir == "" {
		cfg.LogDir = "/tmp/nacos/log"
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = "/tmp/nacos/cache"
	}

	serverConfigs, err := ParseServerAddrs(cfg.ServerAddr)
	if err != nil {
		return nil, err
	}

	clientConfig := constant.ClientConfig{
		NamespaceId:         cfg.NamespaceID,
		TimeoutMs:           5000,
		NotLoadCacheAtStart: true,
		LogDir:              cfg.LogDir,
		CacheDir:            cfg.CacheDir,
		LogLevel:            "warn",
	}

	namingClient, err := clients.NewNamingClient(vo.NacosClientParam{
		ClientConfig:  &clientConfig,
		ServerConfigs: serverConfigs,
	})
	if err != nil {
		return nil, fmt.Errorf("创建Nacos命名服务客户端失败: %w", err)
	}

	return &Registrar{
		config:       cfg,
		namingClient: namingClient,
		logger:       log,
		stop:         make(chan struct{}),
	}, nil
}

// Register 注册服务实例并启动心跳
func (r *Registrar) Register(port int, heartbeat time.Duration) error {
	ip, err := localIP()
	if err != nil {
		return fmt.Errorf("无法获取本机IP: %w", err)
	}
	r.ip = ip
	r.port = uint64(port)

	ok, err := r.namingClient.RegisterInstance(vo.RegisterInstanceParam{
		Ip:          r.ip,
		Port:        r.port,
		ServiceName: r.config.ServiceName,
		Weight:      10,
		Enable:      true,
		Healthy:     true,
		Ephemeral:   true,
		Metadata:    r.config.Metadata,
		GroupName:   r.config.Group,
	})
	if err != nil {
		return fmt.Errorf("注册服务实例失败: %w", err)
	}
	if !ok {
		return fmt.Errorf("注册服务实例失败: %s", r.config.ServiceName)
	}

	go r.heartbeat(heartbeat)
	return nil
}

func (r *Registrar) heartbeat(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			_, err := r.namingClient.UpdateInstance(vo.UpdateInstanceParam{
				Ip:          r.ip,
				Port:        r.port,
				ServiceName: r.config.ServiceName,
				Weight:      10,
				Enable:      true,
				Healthy:     true,
				Ephemeral:   true,
				Metadata:    r.config.Metadata,
				GroupName:   r.config.Group,
			})
			if err != nil {
				r.logger.Warn("更新服务实例状态失败: %v", err)
			}
		}
	}
}

// Deregister 停止心跳并注销服务实例
func (r *Registrar) Deregister() error {
	close(r.stop)
	_, err := r.namingClient.DeregisterInstance(vo.DeregisterInstanceParam{
		Ip:          r.ip,
		Port:        r.port,
		ServiceName: r.config.ServiceName,
		Ephemeral:   true,
		GroupName:   r.config.Group,
	})
	if err != nil {
		return fmt.Errorf("注销服务实例失败: %w", err)
	}
	r.namingClient.CloseClient()
	return nil
}

// localIP 获取本机第一个非回环IPv4地址
func localIP() (string, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", err
	}
	for _, addr := range addrs {
		if ipNet, ok := addr.(*net.IPNet); ok && !ipNet.IP.IsLoopback() && ipNet.IP.To4() != nil {
			return ipNet.IP.String(), nil
		}
	}
	return "", fmt.Errorf("未找到可用的IP地址")
}

package storage

import (
	"errors"
	"fmt"
	"io"
)

// ErrFileNotFound 文件不存在错误
var ErrFileNotFound = errors.New("file not found")

// FileInfo 文件元数据结构
type FileInfo struct {
	ID       string // 文件唯一标识符
	Name     string // 原始文件名
	Size     int64  // 文件大小(字节)
	MimeType string // 文件MIME类型(可选)
	Path     string // 内部存储路径(实现相关)
}

// Storage 文件存储接口
// 定义上传文档的基本操作，可以有不同实现(本地文件系统、MinIO等)
type Storage interface {
	// Save 保存文件并返回文件信息
	Save(reader io.Reader, filename string) (FileInfo, error)

	// Get 获取文件内容
	// 文件不存在时返回ErrFileNotFound
	Get(id string) (io.ReadCloser, error)

	// Delete 删除文件
	Delete(id string) error

	// List 列出所有文件
	List() ([]FileInfo, error)

	// Exists 检查文件是否存在
	Exists(id string) (bool, error)
}

// Config 存储配置
type Config struct {
	Type      string // 存储类型: "local", "minio"
	LocalPath string // 本地存储路径 (仅本地存储使用)
	Endpoint  string // MinIO服务端点 (仅MinIO使用)
	AccessKey string // 访问密钥ID (仅MinIO使用)
	SecretKey string // 秘密访问密钥 (仅MinIO使用)
	UseSSL    bool   // 是否使用SSL (仅MinIO使用)
	Bucket    string // 存储桶名称 (仅MinIO使用)
}

// NewStorage 根据配置创建存储实例
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "", "local":
		path := cfg.LocalPath
		if path == "" {
			path = "data/uploads"
		}
		return NewLocalStorage(LocalConfig{Path: path})
	case "minio":
		return NewMinioStorage(MinioConfig{
			Endpoint:  cfg.Endpoint,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			UseSSL:    cfg.UseSSL,
			Bucket:    cfg.Bucket,
		})
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}

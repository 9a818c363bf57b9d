package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// errStopWalk 提前结束目录遍历的信号
var errStopWalk = errors.New("stop walk")

// LocalStorage 本地文件存储实现
// 文件按上传日期分目录存放，文件名为生成的ID加原扩展名
type LocalStorage struct {
	basePath string
}

// LocalConfig 本地存储配置
type LocalConfig struct {
	Path string // 本地存储路径
}

// NewLocalStorage 创建本地存储实例
func NewLocalStorage(cfg LocalConfig) (*LocalStorage, error) {
	absPath, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path: %v", err)
	}

	if err := os.MkdirAll(absPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %v", err)
	}

	return &LocalStorage{basePath: absPath}, nil
}

// Save 保存文件到本地存储
// 保留扩展名，解析器靠扩展名选择处理方式
func (s *LocalStorage) Save(reader io.Reader, filename string) (FileInfo, error) {
	id := uuid.New().String()
	relPath := filepath.Join(time.Now().Format("2006/01/02"), id+filepath.Ext(filename))
	fullPath := filepath.Join(s.basePath, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return FileInfo{}, fmt.Errorf("failed to create directory: %v", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return FileInfo{}, fmt.Errorf("failed to create file: %v", err)
	}
	defer file.Close()

	size, err := io.Copy(file, reader)
	if err != nil {
		return FileInfo{}, fmt.Errorf("failed to write file: %v", err)
	}

	return FileInfo{
		ID:       id,
		Name:     filename,
		Size:     size,
		MimeType: getMimeType(filename),
		Path:     relPath,
	}, nil
}

// Get 获取文件内容
func (s *LocalStorage) Get(id string) (io.ReadCloser, error) {
	path, err := s.locate(id)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %v", err)
	}
	return file, nil
}

// Delete 删除文件
func (s *LocalStorage) Delete(id string) error {
	path, err := s.locate(id)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete file: %v", err)
	}
	return nil
}

// List 列出所有文件
func (s *LocalStorage) List() ([]FileInfo, error) {
	var files []FileInfo

	err := filepath.WalkDir(s.basePath, func(path string, entry fs.DirEntry, err error) error {
		if err != nil || entry.IsDir() {
			return err
		}

		relPath, err := filepath.Rel(s.basePath, path)
		if err != nil {
			return err
		}

		info, err := entry.Info()
		if err != nil {
			return err
		}

		name := entry.Name()
		files = append(files, FileInfo{
			ID:       strings.TrimSuffix(name, filepath.Ext(name)),
			Name:     name,
			Size:     info.Size(),
			MimeType: getMimeType(name),
			Path:     relPath,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %v", err)
	}

	return files, nil
}

// Exists 检查文件是否存在
func (s *LocalStorage) Exists(id string) (bool, error) {
	_, err := s.locate(id)
	if errors.Is(err, ErrFileNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// locate 根据ID查找文件的完整路径
// 日期目录结构不大，直接遍历查找
func (s *LocalStorage) locate(id string) (string, error) {
	var found string

	err := filepath.WalkDir(s.basePath, func(path string, entry fs.DirEntry, err error) error {
		if err != nil || entry.IsDir() {
			return err
		}

		name := entry.Name()
		if strings.TrimSuffix(name, filepath.Ext(name)) == id {
			found = path
			return errStopWalk
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStopWalk) {
		return "", fmt.Errorf("error searching for file: %v", err)
	}

	if found == "" {
		return "", ErrFileNotFound
	}
	return found, nil
}

// getMimeType 根据文件扩展名判断MIME类型
func getMimeType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "application/pdf"
	case ".md", ".markdown":
		return "text/markdown"
	case ".txt", ".text":
		return "text/plain"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}

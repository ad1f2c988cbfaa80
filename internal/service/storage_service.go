package service

import (
	"context"
	"courseforge_backend/internal/config"
	"courseforge_backend/internal/util"
	"courseforge_backend/pkg/logger"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// SourceStore 定义原始素材文件的归档接口
type SourceStore interface {
	PutFile(ctx context.Context, filename string, localPath string, contentType string) (string, error)
	Remove(ctx context.Context, filename string) error
	URL(filename string) string
}

// LocalSourceStore 本地目录归档，上传目录本身就是归档位置
type LocalSourceStore struct {
	Config *config.StorageConfig
}

func (p *LocalSourceStore) PutFile(ctx context.Context, filename string, localPath string, contentType string) (string, error) {
	dst := filepath.Join(p.Config.LocalPath, filename)
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", err
	}

	// 源文件已经在归档位置时无需复制
	if abs, err := filepath.Abs(localPath); err == nil {
		if dstAbs, err := filepath.Abs(dst); err == nil && abs == dstAbs {
			return p.URL(filename), nil
		}
	}

	src, err := os.Open(localPath)
	if err != nil {
		return "", err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return "", err
	}
	return p.URL(filename), nil
}

func (p *LocalSourceStore) Remove(ctx context.Context, filename string) error {
	return os.Remove(filepath.Join(p.Config.LocalPath, filename))
}

func (p *LocalSourceStore) URL(filename string) string {
	return "/uploads/" + filename
}

// MinioSourceStore MinIO归档实现
type MinioSourceStore struct {
	Config *config.StorageConfig
	Client *minio.Client
}

func NewMinioSourceStore(cfg *config.StorageConfig) (*MinioSourceStore, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: false,
	})
	if err != nil {
		return nil, err
	}
	return &MinioSourceStore{Config: cfg, Client: client}, nil
}

func (p *MinioSourceStore) PutFile(ctx context.Context, filename string, localPath string, contentType string) (string, error) {
	_, err := p.Client.FPutObject(ctx, p.Config.MinioBucket, filename, localPath, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return p.URL(filename), nil
}

func (p *MinioSourceStore) Remove(ctx context.Context, filename string) error {
	return p.Client.RemoveObject(ctx, p.Config.MinioBucket, filename, minio.RemoveObjectOptions{})
}

func (p *MinioSourceStore) URL(filename string) string {
	return "/" + p.Config.MinioBucket + "/" + filename
}

// OSSSourceStore 阿里云OSS归档实现
type OSSSourceStore struct {
	Config *config.StorageConfig
	Client *oss.Client
}

func NewOSSSourceStore(cfg *config.StorageConfig) (*OSSSourceStore, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, err
	}
	return &OSSSourceStore{Config: cfg, Client: client}, nil
}

func (p *OSSSourceStore) PutFile(ctx context.Context, filename string, localPath string, contentType string) (string, error) {
	bucket, err := p.Client.Bucket(p.Config.OSSBucket)
	if err != nil {
		return "", err
	}
	if err := bucket.PutObjectFromFile(filename, localPath); err != nil {
		return "", err
	}
	return p.URL(filename), nil
}

func (p *OSSSourceStore) Remove(ctx context.Context, filename string) error {
	bucket, err := p.Client.Bucket(p.Config.OSSBucket)
	if err != nil {
		return err
	}
	return bucket.DeleteObject(filename)
}

func (p *OSSSourceStore) URL(filename string) string {
	return fmt.Sprintf("https://%s.%s/%s", p.Config.OSSBucket, p.Config.OSSEndpoint, filename)
}

// StorageService 负责上传素材的落盘与归档。
// 文件总是先写进本地上传目录供内容提取使用，
// 配置了远程存储时再镜像一份过去。
type StorageService struct {
	UploadDir string
	Store     SourceStore
}

func NewStorageService(cfg *config.Config) *StorageService {
	var store SourceStore
	switch cfg.Storage.Type {
	case util.StorageMinio:
		p, err := NewMinioSourceStore(&cfg.Storage)
		if err == nil {
			store = p
		} else {
			logger.Log.Warn("MinIO storage unavailable, falling back to local", zap.Error(err))
		}
	case util.StorageOSS:
		p, err := NewOSSSourceStore(&cfg.Storage)
		if err == nil {
			store = p
		} else {
			logger.Log.Warn("OSS storage unavailable, falling back to local", zap.Error(err))
		}
	}

	if store == nil {
		store = &LocalSourceStore{Config: &cfg.Storage}
	}

	return &StorageService{UploadDir: cfg.Upload.Dir, Store: store}
}

// StashUpload 把上传流写到本地上传目录并归档，
// 返回本地路径供提取器读取
func (s *StorageService) StashUpload(ctx context.Context, filename string, reader io.Reader, contentType string) (string, error) {
	if err := os.MkdirAll(s.UploadDir, 0755); err != nil {
		return "", err
	}

	localPath := filepath.Join(s.UploadDir, filename)
	out, err := os.Create(localPath)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, reader); err != nil {
		out.Close()
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}

	if _, err := s.Store.PutFile(ctx, filename, localPath, contentType); err != nil {
		logger.Log.Warn("Failed to archive upload", zap.String("filename", filename), zap.Error(err))
	}

	return localPath, nil
}

func (s *StorageService) RemoveSource(ctx context.Context, filename string) error {
	return s.Store.Remove(ctx, filename)
}

func (s *StorageService) URL(filename string) string {
	return s.Store.URL(filename)
}

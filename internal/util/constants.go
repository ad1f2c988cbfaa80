package util

// 存储后端类型
const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// 上传源类型标签
const (
	SourceText    = "text"
	SourcePDF     = "pdf"
	SourceImage   = "image"
	SourceAudio   = "audio"
	SourceVideo   = "video"
	SourceLink    = "link"
	SourceUnknown = "unknown"
)

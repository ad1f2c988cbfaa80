package service

import (
	"bytes"
	"courseforge_backend/internal/config"
	"courseforge_backend/internal/util"
	"courseforge_backend/pkg/logger"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
	ffmpeg "github.com/u2takey/ffmpeg-go"
	"go.uber.org/zap"
)

// FileProcessor 按媒体类型分发内容抽取：PDF 抽文本、图片 OCR、
// 音视频转写、网页抓正文。抽取层的内部错误记日志后返回空文本，
// 让下游回退生成兜底，而不是中断上传请求。
type FileProcessor struct {
	cfg        *config.Config
	client     ModelClient
	httpClient *http.Client
}

func NewFileProcessor(cfg *config.Config, client ModelClient) *FileProcessor {
	return &FileProcessor{
		cfg:    cfg,
		client: client,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SourceTypeOf 从 Content-Type 推断来源类型标签
func (p *FileProcessor) SourceTypeOf(contentType string) string {
	if contentType == "" {
		return util.SourceUnknown
	}

	lower := strings.ToLower(contentType)
	switch {
	case strings.Contains(lower, "pdf"):
		return util.SourcePDF
	case strings.Contains(lower, "image"):
		return util.SourceImage
	case strings.Contains(lower, "audio"):
		return util.SourceAudio
	case strings.Contains(lower, "video"):
		return util.SourceVideo
	default:
		return util.SourceText
	}
}

// ProcessFile 抽取文件的纯文本内容
func (p *FileProcessor) ProcessFile(filePath string, contentType string) (string, error) {
	switch p.SourceTypeOf(contentType) {
	case util.SourcePDF:
		return p.processPDF(filePath), nil
	case util.SourceImage:
		return p.processImage(filePath), nil
	case util.SourceAudio, util.SourceVideo:
		return p.processMedia(filePath), nil
	default:
		// 按纯文本读取
		data, err := os.ReadFile(filePath)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}

func (p *FileProcessor) processPDF(filePath string) string {
	f, reader, err := pdf.Open(filePath)
	if err != nil {
		logger.Log.Warn("PDF open failed", zap.String("path", filePath), zap.Error(err))
		return ""
	}
	defer f.Close()

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			logger.Log.Warn("PDF page extraction failed",
				zap.String("path", filePath), zap.Int("page", i), zap.Error(err))
			continue
		}
		if text != "" {
			pages = append(pages, text)
		}
	}

	return strings.Join(pages, "\n\n")
}

// processImage 调用 tesseract 可执行文件做 OCR，路径可通过配置覆盖
func (p *FileProcessor) processImage(filePath string) string {
	tesseractCmd := p.cfg.Upload.TesseractCmd
	if tesseractCmd == "" {
		tesseractCmd = "tesseract"
	}

	// tesseract <image> stdout 直接输出识别文本
	cmd := exec.Command(tesseractCmd, filePath, "stdout")
	var out bytes.Buffer
	var errOut bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errOut

	if err := cmd.Run(); err != nil {
		logger.Log.Warn("OCR failed",
			zap.String("path", filePath),
			zap.String("stderr", errOut.String()),
			zap.Error(err))
		return ""
	}

	return out.String()
}

// processMedia 先用 ffmpeg 把音视频转成 16k 单声道 wav，再送转写接口。
// 模型未配置时返回说明文字而不是报错，生成器会基于它产出回退课程。
func (p *FileProcessor) processMedia(filePath string) string {
	if p.client == nil || !p.client.Configured() {
		return "Audio and video transcription requires a configured AI provider."
	}

	wavPath := filepath.Join(os.TempDir(), fmt.Sprintf("courseforge_asr_%d.wav", time.Now().UnixNano()))
	defer os.Remove(wavPath)

	err := ffmpeg.Input(filePath).
		Output(wavPath, ffmpeg.KwArgs{
			"ar": "16000",
			"ac": "1",
			"vn": "",
		}).
		OverWriteOutput().
		Run()
	if err != nil {
		logger.Log.Warn("ffmpeg audio extraction failed", zap.String("path", filePath), zap.Error(err))
		return ""
	}

	text, err := p.client.Transcribe(wavPath)
	if err != nil {
		logger.Log.Warn("transcription failed", zap.String("path", filePath), zap.Error(err))
		return ""
	}

	return text
}

// ProcessLink 抓取网页并抽取正文文本
func (p *FileProcessor) ProcessLink(url string) string {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return fmt.Sprintf("Error fetching content from %s: %v", url, err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Sprintf("Error fetching content from %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Sprintf("Error fetching content from %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Sprintf("Error fetching content from %s: %v", url, err)
	}

	return ExtractReadableText(bytes.NewReader(body), url)
}

// ExtractReadableText 去掉 script/style 后抽取文本并压缩空白
func ExtractReadableText(r io.Reader, url string) string {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return fmt.Sprintf("Error fetching content from %s: %v", url, err)
	}

	doc.Find("script, style").Remove()
	return strings.Join(strings.Fields(doc.Text()), " ")
}

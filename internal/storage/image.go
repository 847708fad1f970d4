package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

// ErrUnsupportedFormat 表示上传的文件不是 jpg/jpeg/png 图片
var ErrUnsupportedFormat = errors.New("Only jpg, jpeg and png images are allowed")

// ProcessedImage 是处理后的图片数据
type ProcessedImage struct {
	Data        []byte
	ContentType string
	Ext         string
	Width       int
	Height      int
}

// ProcessImage 校验图片格式，并在超出 maxDimension 时等比缩小，不放大
func ProcessImage(r io.Reader, maxDimension int) (*ProcessedImage, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("读取图片失败: %w", err)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, ErrUnsupportedFormat
	}

	out := &ProcessedImage{Data: data, Width: cfg.Width, Height: cfg.Height}
	switch format {
	case "jpeg":
		out.ContentType, out.Ext = "image/jpeg", "jpg"
	case "png":
		out.ContentType, out.Ext = "image/png", "png"
	default:
		return nil, ErrUnsupportedFormat
	}

	w, h := fitWithin(cfg.Width, cfg.Height, maxDimension)
	if w == cfg.Width && h == cfg.Height {
		return out, nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrUnsupportedFormat
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if format == "jpeg" {
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 90})
	} else {
		err = png.Encode(&buf, dst)
	}
	if err != nil {
		return nil, fmt.Errorf("编码图片失败: %w", err)
	}

	out.Data = buf.Bytes()
	out.Width, out.Height = w, h
	return out, nil
}

// fitWithin 返回保持宽高比且不超过 max×max 的尺寸
func fitWithin(width, height, max int) (int, int) {
	if max <= 0 || (width <= max && height <= max) {
		return width, height
	}
	if width >= height {
		h := height * max / width
		if h < 1 {
			h = 1
		}
		return max, h
	}
	w := width * max / height
	if w < 1 {
		w = 1
	}
	return w, max
}

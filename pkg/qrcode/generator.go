package qrcode

import (
	"fmt"
	"net/url"
)

// Generator 二维码图片URL生成器
// 创建二维码时由服务端推导qr_code_url，做成可注入接口方便测试替换
type Generator interface {
	GenerateURL(target string) string
}

// ChartAPIGenerator 基于图表服务的二维码生成器
type ChartAPIGenerator struct {
	baseURL string
	size    int
}

// NewChartAPIGenerator 创建图表服务生成器
func NewChartAPIGenerator(baseURL string, size int) *ChartAPIGenerator {
	if baseURL == "" {
		baseURL = "https://chart.googleapis.com/chart"
	}
	if size <= 0 {
		size = 200
	}
	return &ChartAPIGenerator{
		baseURL: baseURL,
		size:    size,
	}
}

// GenerateURL 生成二维码图片URL
func (g *ChartAPIGenerator) GenerateURL(target string) string {
	return fmt.Sprintf("%s?chs=%dx%d&chld=M|0&cht=qr&chl=%s",
		g.baseURL, g.size, g.size, url.QueryEscape(target))
}

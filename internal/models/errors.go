package models

import "errors"

var (
	// ErrSummaryNotFound 摘要记录不存在错误
	ErrSummaryNotFound = errors.New("summary not found")
)

package handler

import (
	"fmt"
	"io"

	"github.com/gin-gonic/gin"

	"echoverse-api/pkg/errors"
)

// readFormFile 读取 multipart 文件字段，超过 limit 字节时返回 ErrPayloadTooLarge
func readFormFile(c *gin.Context, field string, limit int64) (string, string, []byte, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return "", "", nil, errors.ErrInvalidParam.WithDetail(fmt.Sprintf("multipart field %q is required", field))
	}
	if limit > 0 && fh.Size > limit {
		return "", "", nil, errors.ErrPayloadTooLarge.WithDetail(fmt.Sprintf("file exceeds %d bytes", limit))
	}

	f, err := fh.Open()
	if err != nil {
		return "", "", nil, errors.ErrInvalidParam.WithError(err)
	}
	defer f.Close()

	var r io.Reader = f
	if limit > 0 {
		r = io.LimitReader(f, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", "", nil, errors.ErrInvalidParam.WithError(err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return "", "", nil, errors.ErrPayloadTooLarge.WithDetail(fmt.Sprintf("file exceeds %d bytes", limit))
	}
	return fh.Filename, fh.Header.Get("Content-Type"), data, nil
}

package main

import (
	"github.com/fyerfyer/doc-summary-system/cmd"
	"github.com/joho/godotenv"
)

func main() {
	// 加载.env文件中的环境变量，文件不存在时忽略
	_ = godotenv.Load()

	cmd.Execute()
}

// Package util 提供通用工具相关的子包。
//
// 子包列表：
//   - xfile: 目标文件路径校验、父目录创建、目录/文件名拆分
package util

// Package xconf 从 YAML/JSON 文件或字节数据加载配置，基于 koanf 实现。
//
// xconf 只负责加载和反序列化，不做必选字段校验和默认值注入；
// 零值字段由各组件自己的 Config 类型解释为默认值（见 xsink.Config）。
//
// # 支持的格式
//
//   - YAML：.yaml, .yml
//   - JSON：.json
//
// # Unmarshal
//
// 使用 koanf 默认的 mapstructure 解码配置：允许弱类型转换，
// "100ms" 这样的字符串可以直接解码为 time.Duration。
//
//	cfg, err := xconf.Load("/etc/app/sink.yaml")
//	if err != nil {
//	    return err
//	}
//	var sink xsink.Config
//	if err := cfg.Unmarshal("sink", &sink); err != nil {
//	    return err
//	}
package xconf

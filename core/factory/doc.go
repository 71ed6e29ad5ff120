// Package factory is a small generic registry used to build pluggable
// components, such as metrics sinks, from a type name and a map of raw
// settings. Factories decode the settings into typed structs with Decode.
//
//	reg := factory.NewRegistry[metrics.RunRecorder]()
//	_ = reg.Register("prometheus", func(conf map[string]any) (metrics.RunRecorder, error) {
//	    var c struct{ Job string `json:"job"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return newSink(c.Job), nil
//	})
//	rec, err := reg.Create(factory.ModuleConfig{Type: "prometheus", Conf: map[string]any{"job": "dhw"}})
package factory

// Package factory provides a small generic registry used to instantiate
// pluggable modules from configuration. A module is described by a type
// string plus a map of raw settings; registered factories decode the
// settings into typed structs and build the concrete implementation.
//
// Example usage:
//
//	reg := factory.NewRegistry[io.Writer]()
//	reg.Register("file", func(conf map[string]any) (io.Writer, error) {
//	    var c struct{ Path string `json:"path"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return os.Create(c.Path)
//	})
//	w, err := reg.Create(factory.ModuleConfig{Type: "file", Conf: map[string]any{"path": "out.csv"}})
package factory

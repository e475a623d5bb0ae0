// Package lsp serves decoded class files to editors over the Language Server
// Protocol. Only document symbols are provided.
package lsp

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhamidi/jclass/classfile"
	"github.com/dhamidi/jclass/java"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

const lsName = "jclass"

type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string
	log     commonlog.Logger
}

func NewServer(version string) *Server {
	ls := &Server{
		version: version,
		log:     commonlog.GetLogger("jclass.lsp"),
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDocumentSymbol: ls.documentSymbol,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()
	capabilities.DocumentSymbolProvider = true

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	ls.log.Infof("%s %s ready", lsName, ls.version)
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) documentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil || filepath.Ext(path) != ".class" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		ls.log.Warningf("cannot read %s: %s", path, err)
		return nil, nil
	}
	if !classfile.Sniff(data) {
		ls.log.Infof("%s is not a class file", path)
		return nil, nil
	}

	class, err := java.Parse(data)
	if err != nil {
		ls.log.Warningf("cannot decode %s: %s", path, err)
		return nil, nil
	}
	ls.log.Infof("document symbols for %s", class.Name)
	return []protocol.DocumentSymbol{classSymbol(class, data, path)}, nil
}

func classSymbol(class *java.Class, data []byte, path string) protocol.DocumentSymbol {
	name := class.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), ".class")
	}
	detail := class.SuperName
	header := classfile.Span{Offset: 0, Length: min(8, len(data))}
	sym := protocol.DocumentSymbol{
		Name:           name,
		Detail:         &detail,
		Kind:           classKind(class),
		Range:          spanRange(data, classfile.Span{Offset: 0, Length: len(data)}),
		SelectionRange: spanRange(data, header),
	}
	for _, f := range class.Fields {
		detail := f.Type.String()
		kind := protocol.SymbolKindField
		if f.AccessFlags.Enum {
			kind = protocol.SymbolKindEnumMember
		} else if f.AccessFlags.Static && f.AccessFlags.Final {
			kind = protocol.SymbolKindConstant
		}
		sym.Children = append(sym.Children, protocol.DocumentSymbol{
			Name:           f.Name,
			Detail:         &detail,
			Kind:           kind,
			Range:          spanRange(data, f.Span),
			SelectionRange: spanRange(data, f.Span),
		})
	}
	for _, m := range class.Methods {
		detail := m.Descriptor
		kind := protocol.SymbolKindMethod
		if m.IsConstructor() {
			kind = protocol.SymbolKindConstructor
		}
		sym.Children = append(sym.Children, protocol.DocumentSymbol{
			Name:           m.Name,
			Detail:         &detail,
			Kind:           kind,
			Range:          spanRange(data, m.Span),
			SelectionRange: spanRange(data, m.Span),
		})
	}
	return sym
}

// spanRange maps a byte span onto document positions. Lines are split at
// 0x0A bytes and characters count bytes, as an editor shows raw class bytes.
func spanRange(data []byte, span classfile.Span) protocol.Range {
	return protocol.Range{
		Start: offsetPosition(data, span.Offset),
		End:   offsetPosition(data, span.End()),
	}
}

func offsetPosition(data []byte, offset int) protocol.Position {
	offset = min(offset, len(data))
	var line, start int
	for i, b := range data[:offset] {
		if b == '\n' {
			line++
			start = i + 1
		}
	}
	return protocol.Position{
		Line:      protocol.UInteger(line),
		Character: protocol.UInteger(offset - start),
	}
}

func classKind(class *java.Class) protocol.SymbolKind {
	switch class.Kind() {
	case "interface", "annotation":
		return protocol.SymbolKindInterface
	case "enum":
		return protocol.SymbolKindEnum
	case "module":
		return protocol.SymbolKindModule
	default:
		return protocol.SymbolKindClass
	}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

package lsp

import (
	"slices"
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/dslkit/grammar"
	"github.com/dhamidi/dslkit/parser"
)

// Documents holds the text of open documents and caches their syntax
// trees. Every update takes a new revision from a counter shared by all
// documents; trees are cached per revision, so a tree is parsed at most
// once however many requests ask for it, and a reopened document never
// sees a tree of its earlier text.
type Documents struct {
	table *grammar.Table
	opts  []parser.Option
	log   commonlog.Logger

	mu       sync.Mutex
	open     map[string]*document
	revision int
	trees    *lru.ARCCache
}

type document struct {
	uri      string
	path     string
	text     string
	revision int
}

type treeKey struct {
	uri      string
	revision int
}

func NewDocuments(table *grammar.Table, cacheSize int, opts ...parser.Option) (*Documents, error) {
	trees, err := lru.NewARC(cacheSize)
	if err != nil {
		return nil, err
	}
	return &Documents{
		table: table,
		opts:  opts,
		log:   commonlog.GetLogger("dslkit.lsp"),
		open:  make(map[string]*document),
		trees: trees,
	}, nil
}

// Update replaces the text of uri, opening the document if needed.
func (d *Documents) Update(uri, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	doc, ok := d.open[uri]
	if !ok {
		path, err := uriToPath(uri)
		if err != nil {
			path = uri
		}
		doc = &document{uri: uri, path: path}
		d.open[uri] = doc
	}
	d.revision++
	doc.text = text
	doc.revision = d.revision
}

func (d *Documents) Close(uri string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	doc, ok := d.open[uri]
	if !ok {
		return
	}
	delete(d.open, uri)
	d.trees.Remove(treeKey{uri: uri, revision: doc.revision})
}

func (d *Documents) Text(uri string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	doc, ok := d.open[uri]
	if !ok {
		return "", false
	}
	return doc.text, true
}

// Tree returns the syntax tree of the current text of uri. The second
// result is false for documents that are not open or could not be parsed.
func (d *Documents) Tree(uri string) (*parser.Tree, bool) {
	d.mu.Lock()
	doc, ok := d.open[uri]
	if !ok {
		d.mu.Unlock()
		return nil, false
	}
	key := treeKey{uri: uri, revision: doc.revision}
	path, text := doc.path, doc.text
	d.mu.Unlock()

	if cached, ok := d.trees.Get(key); ok {
		return cached.(*parser.Tree), true
	}

	opts := append(slices.Clone(d.opts), parser.WithFile(path))
	tree, err := parser.Parse(d.table, []byte(text), opts...)
	if err != nil {
		d.log.Errorf("%s: %s", path, err)
		return nil, false
	}
	d.trees.Add(key, tree)
	return tree, true
}

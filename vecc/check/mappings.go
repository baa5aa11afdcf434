// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package check

import (
	"github.com/google/vecc/vecc/ast"
	"github.com/google/vecc/vecc/sem"
)

// Mappings is a two-way relational map of ast nodes to semantic nodes,
// collected for tools that need to navigate between the trees.
type Mappings struct {
	ASTToSem map[ast.Node][]sem.Node
	SemToAST map[sem.Node]ast.Node
}

// NewMappings returns a new, initialized Mappings struct.
func NewMappings() *Mappings {
	return &Mappings{
		ASTToSem: map[ast.Node][]sem.Node{},
		SemToAST: map[sem.Node]ast.Node{},
	}
}

// Add records that the semantic node was built from the ast node.
func (m *Mappings) Add(in ast.Node, out sem.Node) {
	if in == nil || out == nil {
		return
	}
	m.ASTToSem[in] = append(m.ASTToSem[in], out)
	if _, present := m.SemToAST[out]; !present {
		m.SemToAST[out] = in
	}
}

// Remove drops all records of the semantic node. It is used when a pass
// substitutes a node that is no longer referenced.
func (m *Mappings) Remove(out sem.Node) {
	if in, ok := m.SemToAST[out]; ok {
		list := m.ASTToSem[in]
		kept := list[:0]
		for _, n := range list {
			if n != out {
				kept = append(kept, n)
			}
		}
		m.ASTToSem[in] = kept
		delete(m.SemToAST, out)
	}
}

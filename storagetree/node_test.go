// Copyright 2025 The sdecode Authors
// This file is part of sdecode.
//
// sdecode is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// sdecode is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with sdecode. If not, see <http://www.gnu.org/licenses/>.

package storagetree

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erigontech/sdecode/internal/word256"
)

func TestFromLinkLeaf(t *testing.T) {
	var v word256.B32
	v[31] = 5
	node := FromLink(LeafLink(v))
	require.True(t, node.HasValue)
	require.Equal(t, v, node.Value())
	require.Empty(t, node.Children)
}

func TestFromLinkInner(t *testing.T) {
	var leaf word256.B32
	leaf[31] = 9
	link := InnerLink([]byte("k"), HashChainStep{Offset: 2, Link: LeafLink(leaf)})
	node := FromLink(link)
	require.False(t, node.HasValue)
	require.Len(t, node.Children, 1)

	child := node.Children["k"]
	require.Len(t, child, 3)
	require.False(t, child[0].HasValue)
	require.False(t, child[1].HasValue)
	require.True(t, child[2].HasValue)
	require.Equal(t, leaf, child[2].Value())
}

func TestAddLinkAgreeingLeavesSucceed(t *testing.T) {
	var v word256.B32
	v[31] = 1
	node := WordNode(v)
	err := node.AddLink(LeafLink(v))
	require.NoError(t, err)
	require.Equal(t, v, node.Value())
}

func TestAddLinkConflictingLeavesFail(t *testing.T) {
	var v1, v2 word256.B32
	v1[31] = 1
	v2[31] = 2
	node := WordNode(v1)
	err := node.AddLink(LeafLink(v2))
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInconsistentMerge)
}

func TestAddLinkMergesIntoExistingChild(t *testing.T) {
	var first, second word256.B32
	first[31] = 1
	second[31] = 2

	node := EmptyNode()
	require.NoError(t, node.AddLink(InnerLink([]byte("k"), HashChainStep{Offset: 0, Link: LeafLink(first)})))
	require.NoError(t, node.AddLink(InnerLink([]byte("k"), HashChainStep{Offset: 1, Link: LeafLink(second)})))

	child := node.Children["k"]
	require.Len(t, child, 2)
	require.Equal(t, first, child[0].Value())
	require.Equal(t, second, child[1].Value())
}

func TestStructureAddChainExtendsAndMerges(t *testing.T) {
	var v0, v2 word256.B32
	v0[31] = 10
	v2[31] = 20

	var structure StorageStructure
	require.NoError(t, structure.AddChain(HashChainStep{Offset: 0, Link: LeafLink(v0)}))
	require.NoError(t, structure.AddChain(HashChainStep{Offset: 2, Link: LeafLink(v2)}))

	require.Len(t, structure, 3)
	require.Equal(t, v0, structure[0].Value())
	require.False(t, structure[1].HasValue)
	require.Equal(t, v2, structure[2].Value())
}

func TestWithChildOverwritesSameKey(t *testing.T) {
	node := EmptyNode()
	node = node.WithChild([]byte("k"), SingleNode(WordNode(word256.Zero)))
	require.Len(t, node.Children, 1)

	var v word256.B32
	v[0] = 1
	node = node.WithChild([]byte("k"), SingleNode(WordNode(v)))
	require.Len(t, node.Children, 1)
	require.Equal(t, v, node.Children["k"][0].Value())
}

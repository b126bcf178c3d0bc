package graphlib

// Preorder returns a depth-first preorder traversal from each root in vs.
// Directed graphs navigate successors, undirected graphs neighbors, matching
// graphlib's alg.preorder.
func Preorder[N, E, G any](g *Graph[N, E, G], vs ...string) []string {
	return dfs(g, vs, false)
}

// Postorder is the postorder counterpart of Preorder.
func Postorder[N, E, G any](g *Graph[N, E, G], vs ...string) []string {
	return dfs(g, vs, true)
}

func dfs[N, E, G any](g *Graph[N, E, G], vs []string, post bool) []string {
	navigate := g.Successors
	if !g.IsDirected() {
		navigate = g.Neighbors
	}
	var acc []string
	visited := make(map[string]bool)
	var visit func(v string)
	visit = func(v string) {
		if visited[v] {
			return
		}
		visited[v] = true
		if !post {
			acc = append(acc, v)
		}
		for _, w := range navigate(v) {
			visit(w)
		}
		if post {
			acc = append(acc, v)
		}
	}
	for _, v := range vs {
		visit(v)
	}
	return acc
}

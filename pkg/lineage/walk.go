package lineage

import (
	"github.com/leapstack-labs/sqlbridge/pkg/core"
)

// walker accumulates lineage into a summary. All scope state is local
// to the statement being walked.
type walker struct {
	sum *Summary
}

func (w *walker) stmt(s core.Statement) {
	switch x := s.(type) {
	case *core.SelectStmt:
		w.selectChain(x, newScope())
	case *core.InsertStmt:
		w.insertStmt(x)
	case *core.UpdateStmt:
		w.updateStmt(x)
	case *core.DeleteStmt:
		w.deleteStmt(x)
	case *core.CreateTableStmt:
		w.createTableStmt(x)
	case *core.CreateIndexStmt:
		w.tableTriple(ActionCreate, x.Table)
		for _, col := range x.Columns {
			w.sum.addColumn(ColumnRef{ActionCreate, x.Table.Name, col.Name})
		}
	case *core.CreateViewStmt:
		w.tableTriple(ActionCreate, x.View)
		for _, col := range x.Columns {
			w.sum.addColumn(ColumnRef{ActionCreate, x.View.Name, col})
		}
		w.selectChain(x.Query, newScope())
	case *core.CreateDatabaseStmt:
		w.sum.addTable(TableRef{ActionCreate, x.Name, ""})
	case *core.AlterTableStmt:
		w.alterTableStmt(x)
	case *core.DropStmt:
		for _, name := range x.Names {
			w.tableTriple(ActionDrop, name)
		}
		if x.OnTable != nil {
			w.tableTriple(ActionDrop, x.OnTable)
		}
	case *core.TruncateStmt:
		// TRUNCATE removes rows, not the table.
		for _, name := range x.Tables {
			w.tableTriple(ActionDelete, name)
		}
	case *core.RenameStmt:
		for _, pair := range x.Pairs {
			w.tableTriple(ActionRename, pair.From)
			w.tableTriple(ActionRename, pair.To)
		}
	case *core.UseStmt:
		w.sum.addTable(TableRef{ActionUse, x.Database, ""})
	case *core.LockStmt:
		for _, item := range x.Items {
			w.tableTriple(ActionLock, item.Table)
		}
	case *core.ShowStmt:
		if x.From != nil {
			w.tableTriple(ActionSelect, x.From)
		}
		sc := newScope()
		w.expr(x.Like, sc, ActionSelect)
		w.expr(x.Where, sc, ActionSelect)
	case *core.DescribeStmt:
		w.tableTriple(ActionSelect, x.Table)
	case *core.SetStmt:
		sc := newScope()
		for _, item := range x.Items {
			w.expr(item.Value, sc, ActionSelect)
		}
	case *core.CallStmt:
		sc := newScope()
		for _, arg := range x.Args {
			w.expr(arg, sc, ActionSelect)
		}
	case *core.IfStmt:
		sc := newScope()
		for _, branch := range x.Branches {
			w.expr(branch.Condition, sc, ActionSelect)
			for _, body := range branch.Body {
				w.stmt(body)
			}
		}
		for _, body := range x.Else {
			w.stmt(body)
		}
	case *core.ForStmt:
		w.selectChain(x.Query, newScope())
		for _, body := range x.Body {
			w.stmt(body)
		}
	case *core.ExplainStmt:
		w.stmt(x.Target)
	}
	// Remaining kinds (GRANT, DECLARE, transaction control, COMMENT ON,
	// UNLOCK) carry no lineage.
}

func (w *walker) tableTriple(action Action, t *core.TableName) {
	w.sum.addTable(TableRef{action, t.Database, t.Name})
}

// ---------- SELECT ----------

// selectChain walks a select and its set-operation tail. CTE names
// registered by any member's WITH clause stay visible for the rest of
// the chain; each member resolves its columns in its own scope.
func (w *walker) selectChain(s *core.SelectStmt, parent *scope) {
	cteScope := parent.child()
	for cur := s; cur != nil; cur = cur.Next {
		if cur.With != nil {
			w.withClause(cur.With, cteScope)
		}
		w.selectCore(cur, cteScope.child())
	}
}

func (w *walker) withClause(with *core.WithClause, sc *scope) {
	for _, cte := range with.CTEs {
		if cte.Query != nil {
			w.selectChain(cte.Query, sc.child())
		}
		sc.addCTE(cte.Name)
	}
}

// selectCore walks one chain member: FROM first so the alias map is
// complete, then every expression-bearing clause.
func (w *walker) selectCore(s *core.SelectStmt, sc *scope) {
	w.fromList(s.From, sc, ActionSelect)

	for _, item := range s.Columns {
		w.expr(item.Expr, sc, ActionSelect)
	}
	w.exprs(s.DistinctOn, sc)
	w.expr(s.Where, sc, ActionSelect)
	w.exprs(s.GroupBy, sc)
	w.expr(s.Having, sc, ActionSelect)
	for _, win := range s.Windows {
		w.windowSpec(win.Spec, sc)
	}
	w.orderBy(s.OrderBy, sc)
	w.limit(s.Limit, sc)
}

// fromList registers every source in the scope, records table triples
// for physical tables, then walks join conditions with the completed
// alias map.
func (w *walker) fromList(sources []*core.TableSource, sc *scope, action Action) {
	for _, src := range sources {
		switch {
		case src.Subquery != nil:
			w.selectChain(src.Subquery, sc.child())
			if src.Alias != "" {
				sc.declare(src.Alias, target{})
			}
		case src.Table != nil:
			alias := src.Alias
			if alias == "" {
				alias = src.Table.Name
			}
			if src.Table.Database == "" && sc.isCTE(src.Table.Name) {
				// A CTE reference is not a physical table.
				sc.declare(alias, target{table: src.Table.Name})
				continue
			}
			w.tableTriple(action, src.Table)
			sc.declare(alias, target{src.Table.Database, src.Table.Name})
		}
	}
	for _, src := range sources {
		w.expr(src.On, sc, ActionSelect)
		for _, col := range src.Using {
			w.sum.addColumn(ColumnRef{ActionSelect, "", col})
		}
	}
}

// ---------- DML ----------

func (w *walker) insertStmt(s *core.InsertStmt) {
	sc := newScope()
	w.tableTriple(ActionInsert, s.Table)
	sc.declare(s.Table.Name, target{s.Table.Database, s.Table.Name})

	for _, col := range s.Columns {
		w.sum.addColumn(ColumnRef{ActionInsert, s.Table.Name, col})
	}
	for _, row := range s.Values {
		w.exprs(row, sc)
	}
	if s.Query != nil {
		w.selectChain(s.Query, sc.child())
	}
	w.assignments(s.SetItems, sc, ActionInsert)
	w.assignments(s.OnDuplicate, sc, ActionInsert)
	if oc := s.OnConflict; oc != nil {
		for _, col := range oc.Columns {
			w.sum.addColumn(ColumnRef{ActionInsert, s.Table.Name, col})
		}
		w.assignments(oc.Updates, sc, ActionInsert)
		w.expr(oc.Where, sc, ActionSelect)
	}
	for _, item := range s.Returning {
		w.expr(item.Expr, sc, ActionSelect)
	}
}

func (w *walker) updateStmt(s *core.UpdateStmt) {
	sc := newScope()
	w.fromList(s.Tables, sc, ActionUpdate)
	w.fromList(s.From, sc, ActionSelect)

	w.assignments(s.Set, sc, ActionUpdate)
	w.expr(s.Where, sc, ActionSelect)
	w.orderBy(s.OrderBy, sc)
	w.limit(s.Limit, sc)
	for _, item := range s.Returning {
		w.expr(item.Expr, sc, ActionSelect)
	}
}

func (w *walker) deleteStmt(s *core.DeleteStmt) {
	sc := newScope()
	// In the multi-table form only the listed targets are deleted; the
	// join list is read.
	fromAction := ActionDelete
	if len(s.Targets) > 0 {
		fromAction = ActionSelect
	}
	w.fromList(s.From, sc, fromAction)
	w.fromList(s.Using, sc, ActionSelect)

	// Multi-table targets name aliases of the join list; resolve them
	// back to real tables.
	for _, t := range s.Targets {
		if t.Database == "" {
			if tgt, ok := sc.resolve(t.Name); ok {
				w.sum.addTable(TableRef{ActionDelete, tgt.database, tgt.table})
				continue
			}
		}
		w.tableTriple(ActionDelete, t)
	}

	w.expr(s.Where, sc, ActionSelect)
	w.orderBy(s.OrderBy, sc)
	w.limit(s.Limit, sc)
	for _, item := range s.Returning {
		w.expr(item.Expr, sc, ActionSelect)
	}
}

// assignments records SET targets under action and walks the assigned
// values as reads.
func (w *walker) assignments(items []*core.Assignment, sc *scope, action Action) {
	for _, a := range items {
		w.assignTarget(a.Column, sc, action)
		w.expr(a.Value, sc, ActionSelect)
	}
}

func (w *walker) assignTarget(c *core.ColumnRef, sc *scope, action Action) {
	table := c.Table
	if c.Database == "" && table != "" {
		if tgt, ok := sc.resolve(table); ok {
			table = tgt.table
		}
	}
	w.sum.addColumn(ColumnRef{action, table, c.Column})
}

// ---------- DDL ----------

func (w *walker) createTableStmt(s *core.CreateTableStmt) {
	w.tableTriple(ActionCreate, s.Table)

	for _, def := range s.Defs {
		switch d := def.(type) {
		case *core.ColumnDef:
			w.sum.addColumn(ColumnRef{ActionCreate, s.Table.Name, d.Name})
			for _, opt := range d.Options {
				if opt.Ref != nil {
					w.references(opt.Ref)
				}
			}
		case *core.IndexDef:
			for _, col := range d.Columns {
				w.sum.addColumn(ColumnRef{ActionCreate, s.Table.Name, col.Name})
			}
		case *core.ConstraintDef:
			for _, col := range d.Columns {
				w.sum.addColumn(ColumnRef{ActionCreate, s.Table.Name, col})
			}
			if d.Ref != nil {
				w.references(d.Ref)
			}
		}
	}
	if s.Like != nil {
		w.tableTriple(ActionSelect, s.Like)
	}
	if s.As != nil {
		w.selectChain(s.As, newScope())
	}
}

// references records a foreign key's referenced table and columns as
// reads.
func (w *walker) references(ref *core.References) {
	w.tableTriple(ActionSelect, ref.Table)
	for _, col := range ref.Columns {
		w.sum.addColumn(ColumnRef{ActionSelect, ref.Table.Name, col})
	}
}

func (w *walker) alterTableStmt(s *core.AlterTableStmt) {
	w.tableTriple(ActionAlter, s.Table)
	tbl := s.Table.Name

	for _, a := range s.Actions {
		if a.Column != nil {
			w.sum.addColumn(ColumnRef{ActionAlter, tbl, a.Column.Name})
			for _, opt := range a.Column.Options {
				if opt.Ref != nil {
					w.references(opt.Ref)
				}
			}
		}
		if a.OldName != "" {
			w.sum.addColumn(ColumnRef{ActionAlter, tbl, a.OldName})
		}
		if a.NewName != "" && a.Kind == core.AlterRenameColumn {
			w.sum.addColumn(ColumnRef{ActionAlter, tbl, a.NewName})
		}
		if a.Index != nil {
			for _, col := range a.Index.Columns {
				w.sum.addColumn(ColumnRef{ActionAlter, tbl, col.Name})
			}
		}
		if a.Constraint != nil {
			for _, col := range a.Constraint.Columns {
				w.sum.addColumn(ColumnRef{ActionAlter, tbl, col})
			}
			if a.Constraint.Ref != nil {
				w.references(a.Constraint.Ref)
			}
		}
	}
}

// ---------- Expressions ----------

func (w *walker) exprs(list []core.Expr, sc *scope) {
	for _, e := range list {
		w.expr(e, sc, ActionSelect)
	}
}

func (w *walker) orderBy(items []*core.OrderByItem, sc *scope) {
	for _, item := range items {
		w.expr(item.Expr, sc, ActionSelect)
	}
}

func (w *walker) limit(l *core.LimitClause, sc *scope) {
	if l == nil {
		return
	}
	w.expr(l.Count, sc, ActionSelect)
	w.expr(l.Offset, sc, ActionSelect)
}

func (w *walker) windowSpec(spec *core.WindowSpec, sc *scope) {
	if spec == nil {
		return
	}
	w.exprs(spec.PartitionBy, sc)
	w.orderBy(spec.OrderBy, sc)
	if spec.Frame != nil {
		if spec.Frame.Start != nil {
			w.expr(spec.Frame.Start.Offset, sc, ActionSelect)
		}
		if spec.Frame.End != nil {
			w.expr(spec.Frame.End.Offset, sc, ActionSelect)
		}
	}
}

// expr walks an expression, recording every column reference it
// contains. Qualifiers resolve through the scope's alias map; an
// unresolved qualifier is kept verbatim.
func (w *walker) expr(e core.Expr, sc *scope, action Action) {
	switch x := e.(type) {
	case nil:
		return
	case *core.ColumnRef:
		table := x.Table
		if x.Database == "" && table != "" {
			if tgt, ok := sc.resolve(table); ok {
				table = tgt.table
			}
		}
		w.sum.addColumn(ColumnRef{action, table, x.Column})
	case *core.StarExpr:
		table := x.Table
		if x.Database == "" && table != "" {
			if tgt, ok := sc.resolve(table); ok {
				table = tgt.table
			}
		}
		w.sum.addColumn(ColumnRef{action, table, "*"})
	case *core.BinaryExpr:
		w.expr(x.Left, sc, action)
		w.expr(x.Right, sc, action)
	case *core.UnaryExpr:
		w.expr(x.Expr, sc, action)
	case *core.ExprList:
		w.exprs(x.Items, sc)
	case *core.InExpr:
		w.expr(x.Expr, sc, action)
		w.exprs(x.Values, sc)
		if x.Query != nil {
			w.selectChain(x.Query, sc.child())
		}
	case *core.BetweenExpr:
		w.expr(x.Expr, sc, action)
		w.expr(x.Low, sc, action)
		w.expr(x.High, sc, action)
	case *core.IsNullExpr:
		w.expr(x.Expr, sc, action)
	case *core.IsBoolExpr:
		w.expr(x.Expr, sc, action)
	case *core.LikeExpr:
		w.expr(x.Expr, sc, action)
		w.expr(x.Pattern, sc, action)
		w.expr(x.Escape, sc, action)
	case *core.ExistsExpr:
		w.selectChain(x.Query, sc.child())
	case *core.SubqueryExpr:
		w.selectChain(x.Query, sc.child())
	case *core.CaseExpr:
		w.expr(x.Operand, sc, action)
		for _, when := range x.Whens {
			w.expr(when.Condition, sc, action)
			w.expr(when.Result, sc, action)
		}
		w.expr(x.Else, sc, action)
	case *core.CastExpr:
		w.expr(x.Expr, sc, action)
	case *core.CollateExpr:
		w.expr(x.Expr, sc, action)
	case *core.FuncCall:
		w.exprs(x.Args, sc)
		w.orderBy(x.OrderBy, sc)
		w.expr(x.Separator, sc, action)
		w.windowSpec(x.Over, sc)
	case *core.ArrayExpr:
		w.exprs(x.Elements, sc)
	case *core.IndexExpr:
		w.expr(x.Expr, sc, action)
		w.expr(x.Index, sc, action)
	case *core.IntervalExpr:
		w.expr(x.Value, sc, action)
	}
	// Literals and parameters carry no lineage.
}

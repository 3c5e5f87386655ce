package format

import (
	"strings"

	"github.com/leapstack-labs/sqlbridge/pkg/core"
)

// stmt dispatches on the statement node type.
func (p *printer) stmt(s core.Statement) error {
	switch x := s.(type) {
	case *core.SelectStmt:
		return p.selectChain(x)
	case *core.InsertStmt:
		return p.insertStmt(x)
	case *core.UpdateStmt:
		return p.updateStmt(x)
	case *core.DeleteStmt:
		return p.deleteStmt(x)
	case *core.CreateTableStmt:
		return p.createTableStmt(x)
	case *core.CreateIndexStmt:
		return p.createIndexStmt(x)
	case *core.CreateViewStmt:
		return p.createViewStmt(x)
	case *core.CreateDatabaseStmt:
		return p.createDatabaseStmt(x)
	case *core.AlterTableStmt:
		return p.alterTableStmt(x)
	case *core.DropStmt:
		return p.dropStmt(x)
	case *core.TruncateStmt:
		return p.truncateStmt(x)
	case *core.RenameStmt:
		return p.renameStmt(x)
	case *core.UseStmt:
		p.keyword("USE ")
		p.ident(x.Database)
		return nil
	case *core.SetStmt:
		return p.setStmt(x)
	case *core.LockStmt:
		return p.lockStmt(x)
	case *core.UnlockStmt:
		p.keyword("UNLOCK TABLES")
		return nil
	case *core.ShowStmt:
		return p.showStmt(x)
	case *core.GrantStmt:
		return p.grantStmt(x)
	case *core.DeclareStmt:
		return p.declareStmt(x)
	case *core.IfStmt:
		return p.ifStmt(x)
	case *core.ForStmt:
		return p.forStmt(x)
	case *core.CallStmt:
		return p.callStmt(x)
	case *core.TransactionStmt:
		return p.transactionStmt(x)
	case *core.CommentStmt:
		return p.commentStmt(x)
	case *core.ExplainStmt:
		return p.explainStmt(x)
	case *core.DescribeStmt:
		p.keyword("DESCRIBE ")
		p.tableName(x.Table)
		return nil
	case nil:
		return renderErr(nil, "nil statement")
	default:
		return renderErr(s, "unknown statement node")
	}
}

// ---------- SELECT ----------

// selectChain renders a select and its set-operation tail.
func (p *printer) selectChain(s *core.SelectStmt) error {
	for cur := s; cur != nil; cur = cur.Next {
		if err := p.selectMember(cur); err != nil {
			return err
		}
		if cur.Next != nil {
			switch cur.SetOp {
			case core.SetUnion, core.SetUnionAll, core.SetIntersect, core.SetExcept:
				p.space()
				p.keyword(string(cur.SetOp))
				p.space()
			default:
				return renderErr(cur, "set-operation chain without an operator")
			}
		}
	}
	return nil
}

// selectMember renders one member of a chain, parenthesized when the
// source parenthesized it (which keeps a member-local ORDER BY inside
// the parentheses).
func (p *printer) selectMember(s *core.SelectStmt) error {
	if s.Parens {
		p.write("(")
	}

	if s.With != nil {
		if err := p.withClause(s.With); err != nil {
			return err
		}
	}

	p.keyword("SELECT")
	if s.Distinct {
		p.keyword(" DISTINCT")
		if len(s.DistinctOn) > 0 {
			p.keyword(" ON (")
			if err := p.exprList(s.DistinctOn); err != nil {
				return err
			}
			p.write(")")
		}
	}
	p.space()
	if err := p.selectItems(s.Columns); err != nil {
		return err
	}

	if len(s.From) > 0 {
		p.keyword(" FROM ")
		if err := p.fromList(s.From); err != nil {
			return err
		}
	}
	if s.Where != nil {
		p.keyword(" WHERE ")
		if err := p.expr(s.Where); err != nil {
			return err
		}
	}
	if len(s.GroupBy) > 0 {
		p.keyword(" GROUP BY ")
		if err := p.exprList(s.GroupBy); err != nil {
			return err
		}
	}
	if s.Having != nil {
		p.keyword(" HAVING ")
		if err := p.expr(s.Having); err != nil {
			return err
		}
	}
	for i, w := range s.Windows {
		if i == 0 {
			p.keyword(" WINDOW ")
		} else {
			p.write(", ")
		}
		p.ident(w.Name)
		p.keyword(" AS ")
		if err := p.windowSpec(w.Spec); err != nil {
			return err
		}
	}
	if len(s.OrderBy) > 0 {
		p.keyword(" ORDER BY ")
		if err := p.orderByList(s.OrderBy); err != nil {
			return err
		}
	}
	if s.Limit != nil {
		if err := p.limitClause(s.Limit); err != nil {
			return err
		}
	}

	if s.Parens {
		p.write(")")
	}
	return nil
}

func (p *printer) withClause(w *core.WithClause) error {
	p.keyword("WITH ")
	if w.Recursive {
		p.keyword("RECURSIVE ")
	}
	for i, cte := range w.CTEs {
		if i > 0 {
			p.write(", ")
		}
		p.ident(cte.Name)
		if len(cte.Columns) > 0 {
			p.write(" (")
			p.identList(cte.Columns)
			p.write(")")
		}
		p.keyword(" AS (")
		if err := p.selectChain(cte.Query); err != nil {
			return err
		}
		p.write(")")
	}
	p.space()
	return nil
}

func (p *printer) selectItems(items []*core.SelectItem) error {
	for i, item := range items {
		if i > 0 {
			p.write(", ")
		}
		if err := p.expr(item.Expr); err != nil {
			return err
		}
		if item.Alias != "" {
			p.keyword(" AS ")
			p.ident(item.Alias)
		}
	}
	return nil
}

func (p *printer) fromList(sources []*core.TableSource) error {
	for i, src := range sources {
		if i > 0 {
			if src.Join == core.JoinNone && !src.Natural {
				p.write(", ")
			} else {
				p.space()
				if src.Natural {
					p.keyword("NATURAL ")
				}
				if src.Join != core.JoinNone {
					p.keyword(string(src.Join))
				} else {
					p.keyword("JOIN")
				}
				p.space()
			}
		}
		if err := p.tableSource(src); err != nil {
			return err
		}
	}
	return nil
}

func (p *printer) tableSource(src *core.TableSource) error {
	switch {
	case src.Subquery != nil:
		p.write("(")
		if err := p.selectChain(src.Subquery); err != nil {
			return err
		}
		p.write(")")
	case src.Table != nil:
		p.tableName(src.Table)
	default:
		return renderErr(src, "table source with neither table nor subquery")
	}

	if src.Alias != "" {
		p.keyword(" AS ")
		p.ident(src.Alias)
	}
	if src.On != nil {
		p.keyword(" ON ")
		if err := p.expr(src.On); err != nil {
			return err
		}
	}
	if len(src.Using) > 0 {
		p.keyword(" USING (")
		p.identList(src.Using)
		p.write(")")
	}
	return nil
}

// limitClause renders LIMIT in the spelling the source used, including
// the mysql comma form.
func (p *printer) limitClause(l *core.LimitClause) error {
	p.keyword(" LIMIT ")
	if l.Comma {
		if l.Offset == nil {
			return renderErr(l, "comma-form LIMIT without an offset")
		}
		if err := p.expr(l.Offset); err != nil {
			return err
		}
		p.write(", ")
		return p.expr(l.Count)
	}
	if err := p.expr(l.Count); err != nil {
		return err
	}
	if l.Offset != nil {
		p.keyword(" OFFSET ")
		return p.expr(l.Offset)
	}
	return nil
}

// ---------- DML ----------

func (p *printer) insertStmt(s *core.InsertStmt) error {
	if s.Replace {
		p.keyword("REPLACE")
	} else {
		p.keyword("INSERT")
		if s.Ignore {
			p.keyword(" IGNORE")
		}
	}
	if s.Into {
		p.keyword(" INTO")
	}
	p.space()
	p.tableName(s.Table)

	if len(s.Partitions) > 0 {
		p.keyword(" PARTITION (")
		p.identList(s.Partitions)
		p.write(")")
	}
	if len(s.Columns) > 0 {
		p.write(" (")
		p.identList(s.Columns)
		p.write(")")
	}

	switch {
	case len(s.Values) > 0:
		p.keyword(" VALUES ")
		for i, row := range s.Values {
			if i > 0 {
				p.write(", ")
			}
			p.write("(")
			if err := p.exprList(row); err != nil {
				return err
			}
			p.write(")")
		}
	case s.Query != nil:
		p.space()
		if err := p.selectChain(s.Query); err != nil {
			return err
		}
	case len(s.SetItems) > 0:
		p.keyword(" SET ")
		if err := p.assignments(s.SetItems); err != nil {
			return err
		}
	default:
		return renderErr(s, "INSERT without a body")
	}

	if len(s.OnDuplicate) > 0 {
		if !p.cfg.OnDuplicateClause {
			return renderErr(s, "ON DUPLICATE KEY UPDATE is not supported by dialect "+p.cfg.Name)
		}
		p.keyword(" ON DUPLICATE KEY UPDATE ")
		if err := p.assignments(s.OnDuplicate); err != nil {
			return err
		}
	}
	if s.OnConflict != nil {
		if !p.cfg.OnConflictClause {
			return renderErr(s, "ON CONFLICT is not supported by dialect "+p.cfg.Name)
		}
		if err := p.onConflict(s.OnConflict); err != nil {
			return err
		}
	}
	return p.returning(s.Returning)
}

func (p *printer) onConflict(oc *core.OnConflict) error {
	p.keyword(" ON CONFLICT")
	if len(oc.Columns) > 0 {
		p.write(" (")
		p.identList(oc.Columns)
		p.write(")")
	}
	if oc.DoNothing {
		p.keyword(" DO NOTHING")
		return nil
	}
	p.keyword(" DO UPDATE SET ")
	if err := p.assignments(oc.Updates); err != nil {
		return err
	}
	if oc.Where != nil {
		p.keyword(" WHERE ")
		return p.expr(oc.Where)
	}
	return nil
}

func (p *printer) updateStmt(s *core.UpdateStmt) error {
	p.keyword("UPDATE ")
	if err := p.fromList(s.Tables); err != nil {
		return err
	}
	p.keyword(" SET ")
	if err := p.assignments(s.Set); err != nil {
		return err
	}
	if len(s.From) > 0 {
		p.keyword(" FROM ")
		if err := p.fromList(s.From); err != nil {
			return err
		}
	}
	if s.Where != nil {
		p.keyword(" WHERE ")
		if err := p.expr(s.Where); err != nil {
			return err
		}
	}
	if len(s.OrderBy) > 0 {
		p.keyword(" ORDER BY ")
		if err := p.orderByList(s.OrderBy); err != nil {
			return err
		}
	}
	if s.Limit != nil {
		if err := p.limitClause(s.Limit); err != nil {
			return err
		}
	}
	return p.returning(s.Returning)
}

func (p *printer) deleteStmt(s *core.DeleteStmt) error {
	p.keyword("DELETE ")
	for i, target := range s.Targets {
		if i > 0 {
			p.write(", ")
		}
		p.tableName(target)
		if i == len(s.Targets)-1 {
			p.space()
		}
	}
	p.keyword("FROM ")
	if err := p.fromList(s.From); err != nil {
		return err
	}
	if len(s.Using) > 0 {
		p.keyword(" USING ")
		if err := p.fromList(s.Using); err != nil {
			return err
		}
	}
	if s.Where != nil {
		p.keyword(" WHERE ")
		if err := p.expr(s.Where); err != nil {
			return err
		}
	}
	if len(s.OrderBy) > 0 {
		p.keyword(" ORDER BY ")
		if err := p.orderByList(s.OrderBy); err != nil {
			return err
		}
	}
	if s.Limit != nil {
		if err := p.limitClause(s.Limit); err != nil {
			return err
		}
	}
	return p.returning(s.Returning)
}

func (p *printer) assignments(items []*core.Assignment) error {
	for i, a := range items {
		if i > 0 {
			p.write(", ")
		}
		p.columnRef(a.Column)
		p.write(" = ")
		if err := p.expr(a.Value); err != nil {
			return err
		}
	}
	return nil
}

func (p *printer) returning(items []*core.SelectItem) error {
	if len(items) == 0 {
		return nil
	}
	if !p.cfg.SupportsReturning {
		return renderErr(items, "RETURNING is not supported by dialect "+p.cfg.Name)
	}
	p.keyword(" RETURNING ")
	return p.selectItems(items)
}

// ---------- DDL ----------

func (p *printer) createTableStmt(s *core.CreateTableStmt) error {
	p.keyword("CREATE ")
	if s.Temporary {
		p.keyword("TEMPORARY ")
	}
	p.keyword("TABLE ")
	if s.IfNotExists {
		p.keyword("IF NOT EXISTS ")
	}
	p.tableName(s.Table)

	if s.Like != nil {
		p.keyword(" LIKE ")
		p.tableName(s.Like)
		return nil
	}

	if len(s.Defs) > 0 {
		p.write(" (")
		for i, def := range s.Defs {
			if i > 0 {
				p.write(", ")
			}
			if err := p.tableDef(def); err != nil {
				return err
			}
		}
		p.write(")")
		for _, opt := range s.Options {
			p.space()
			p.keyword(opt.Name)
			p.write(" = ")
			if opt.Quoted {
				p.str(opt.Value)
			} else {
				p.write(opt.Value)
			}
		}
	}

	if s.As != nil {
		p.keyword(" AS ")
		return p.selectChain(s.As)
	}
	if len(s.Defs) == 0 {
		return renderErr(s, "CREATE TABLE without a body")
	}
	return nil
}

func (p *printer) tableDef(def core.TableDef) error {
	switch d := def.(type) {
	case *core.ColumnDef:
		return p.columnDef(d)
	case *core.IndexDef:
		p.keyword("KEY")
		if d.Name != "" {
			p.space()
			p.ident(d.Name)
		}
		p.write(" (")
		p.indexColumns(d.Columns)
		p.write(")")
		return nil
	case *core.ConstraintDef:
		return p.constraintDef(d)
	default:
		return renderErr(def, "unknown table definition")
	}
}

func (p *printer) columnDef(d *core.ColumnDef) error {
	p.ident(d.Name)
	p.space()
	p.write(d.Type.String())
	for _, opt := range d.Options {
		if err := p.columnOption(opt); err != nil {
			return err
		}
	}
	return nil
}

func (p *printer) columnOption(opt *core.ColumnOption) error {
	switch opt.Kind {
	case core.ColOptNotNull, core.ColOptNull,
		core.ColOptAutoIncrement, core.ColOptPrimaryKey:
		p.space()
		p.keyword(string(opt.Kind))
	case core.ColOptUnique:
		p.space()
		p.keyword(p.uniqueSpelling())
	case core.ColOptDefault:
		p.keyword(" DEFAULT ")
		return p.operand(opt.Value, precBitOr)
	case core.ColOptOnUpdate:
		p.keyword(" ON UPDATE ")
		return p.expr(opt.Value)
	case core.ColOptCollate:
		p.keyword(" COLLATE ")
		p.write(opt.Text)
	case core.ColOptComment:
		p.keyword(" COMMENT ")
		p.str(opt.Text)
	case core.ColOptReferences:
		p.space()
		return p.references(opt.Ref)
	default:
		return renderErr(opt, "unknown column option")
	}
	return nil
}

// uniqueSpelling returns the dialect's spelling of the UNIQUE option.
func (p *printer) uniqueSpelling() string {
	if p.cfg.UniqueKeySpelling {
		return "UNIQUE KEY"
	}
	return "UNIQUE"
}

func (p *printer) constraintDef(d *core.ConstraintDef) error {
	switch d.Kind {
	case core.ConstraintPrimaryKey:
		if d.Name != "" {
			p.keyword("CONSTRAINT ")
			p.ident(d.Name)
			p.space()
		}
		p.keyword("PRIMARY KEY (")
		p.identList(d.Columns)
		p.write(")")
	case core.ConstraintUnique:
		p.keyword(p.uniqueSpelling())
		if d.Name != "" {
			p.space()
			p.ident(d.Name)
		}
		p.write(" (")
		p.identList(d.Columns)
		p.write(")")
	case core.ConstraintForeignKey:
		if d.Name != "" {
			p.keyword("CONSTRAINT ")
			p.ident(d.Name)
			p.space()
		}
		p.keyword("FOREIGN KEY (")
		p.identList(d.Columns)
		p.write(") ")
		return p.references(d.Ref)
	case core.ConstraintCheck:
		if d.Name != "" {
			p.keyword("CONSTRAINT ")
			p.ident(d.Name)
			p.space()
		}
		p.keyword("CHECK (")
		if err := p.expr(d.Check); err != nil {
			return err
		}
		p.write(")")
	default:
		return renderErr(d, "unknown constraint kind")
	}
	return nil
}

func (p *printer) references(ref *core.References) error {
	if ref == nil {
		return renderErr(ref, "missing REFERENCES clause")
	}
	p.keyword("REFERENCES ")
	p.tableName(ref.Table)
	if len(ref.Columns) > 0 {
		p.write(" (")
		p.identList(ref.Columns)
		p.write(")")
	}
	if ref.OnDelete != core.RefNoAction {
		p.keyword(" ON DELETE ")
		p.keyword(string(ref.OnDelete))
	}
	if ref.OnUpdate != core.RefNoAction {
		p.keyword(" ON UPDATE ")
		p.keyword(string(ref.OnUpdate))
	}
	return nil
}

func (p *printer) indexColumns(cols []*core.IndexColumn) {
	for i, col := range cols {
		if i > 0 {
			p.write(", ")
		}
		p.ident(col.Name)
		if col.Desc {
			p.keyword(" DESC")
		}
	}
}

func (p *printer) createIndexStmt(s *core.CreateIndexStmt) error {
	p.keyword("CREATE ")
	if s.Unique {
		p.keyword("UNIQUE ")
	}
	p.keyword("INDEX ")
	if s.IfNotExists {
		p.keyword("IF NOT EXISTS ")
	}
	p.ident(s.Name)
	p.keyword(" ON ")
	p.tableName(s.Table)
	p.write(" (")
	p.indexColumns(s.Columns)
	p.write(")")
	return nil
}

func (p *printer) createViewStmt(s *core.CreateViewStmt) error {
	p.keyword("CREATE ")
	if s.OrReplace {
		p.keyword("OR REPLACE ")
	}
	p.keyword("VIEW ")
	p.tableName(s.View)
	if len(s.Columns) > 0 {
		p.write(" (")
		p.identList(s.Columns)
		p.write(")")
	}
	p.keyword(" AS ")
	return p.selectChain(s.Query)
}

func (p *printer) createDatabaseStmt(s *core.CreateDatabaseStmt) error {
	p.keyword("CREATE ")
	if s.Schema {
		p.keyword("SCHEMA ")
	} else {
		p.keyword("DATABASE ")
	}
	if s.IfNotExists {
		p.keyword("IF NOT EXISTS ")
	}
	p.ident(s.Name)
	return nil
}

func (p *printer) alterTableStmt(s *core.AlterTableStmt) error {
	p.keyword("ALTER TABLE ")
	p.tableName(s.Table)
	p.space()
	for i, action := range s.Actions {
		if i > 0 {
			p.write(", ")
		}
		if err := p.alterAction(action); err != nil {
			return err
		}
	}
	return nil
}

func (p *printer) alterAction(a *core.AlterAction) error {
	switch a.Kind {
	case core.AlterAddColumn:
		p.keyword("ADD COLUMN ")
		if err := p.columnDef(a.Column); err != nil {
			return err
		}
		return p.columnPosition(a)
	case core.AlterDropColumn:
		p.keyword("DROP COLUMN ")
		p.ident(a.OldName)
	case core.AlterModifyColumn:
		p.keyword("MODIFY COLUMN ")
		if err := p.columnDef(a.Column); err != nil {
			return err
		}
		return p.columnPosition(a)
	case core.AlterChangeColumn:
		p.keyword("CHANGE COLUMN ")
		p.ident(a.OldName)
		p.space()
		if err := p.columnDef(a.Column); err != nil {
			return err
		}
		return p.columnPosition(a)
	case core.AlterRenameTable:
		p.keyword("RENAME TO ")
		p.ident(a.NewName)
	case core.AlterRenameColumn:
		p.keyword("RENAME COLUMN ")
		p.ident(a.OldName)
		p.keyword(" TO ")
		p.ident(a.NewName)
	case core.AlterAddIndex:
		p.keyword("ADD KEY")
		if a.Index.Name != "" {
			p.space()
			p.ident(a.Index.Name)
		}
		p.write(" (")
		p.indexColumns(a.Index.Columns)
		p.write(")")
	case core.AlterAddConstraint:
		p.keyword("ADD ")
		return p.constraintDef(a.Constraint)
	case core.AlterDropIndex:
		p.keyword("DROP KEY ")
		p.ident(a.OldName)
	case core.AlterDropConstraint:
		p.keyword("DROP CONSTRAINT ")
		p.ident(a.OldName)
	case core.AlterDropPrimary:
		p.keyword("DROP PRIMARY KEY")
	case core.AlterSetDefault:
		p.keyword("ALTER COLUMN ")
		p.ident(a.OldName)
		p.keyword(" SET DEFAULT ")
		return p.operand(a.Default, precBitOr)
	case core.AlterDropDefault:
		p.keyword("ALTER COLUMN ")
		p.ident(a.OldName)
		p.keyword(" DROP DEFAULT")
	default:
		return renderErr(a, "unknown ALTER TABLE action")
	}
	return nil
}

func (p *printer) columnPosition(a *core.AlterAction) error {
	if a.First {
		p.keyword(" FIRST")
	} else if a.After != "" {
		p.keyword(" AFTER ")
		p.ident(a.After)
	}
	return nil
}

func (p *printer) dropStmt(s *core.DropStmt) error {
	switch s.Kind {
	case core.ObjectTable, core.ObjectIndex, core.ObjectView,
		core.ObjectDatabase, core.ObjectSchema:
	default:
		return renderErr(s, "unknown DROP object kind")
	}
	p.keyword("DROP ")
	p.keyword(string(s.Kind))
	p.space()
	if s.IfExists {
		p.keyword("IF EXISTS ")
	}
	for i, name := range s.Names {
		if i > 0 {
			p.write(", ")
		}
		p.tableName(name)
	}
	if s.OnTable != nil {
		p.keyword(" ON ")
		p.tableName(s.OnTable)
	}
	if s.Behavior != "" {
		p.space()
		p.keyword(s.Behavior)
	}
	return nil
}

func (p *printer) truncateStmt(s *core.TruncateStmt) error {
	p.keyword("TRUNCATE ")
	if s.TableKw {
		p.keyword("TABLE ")
	}
	for i, name := range s.Tables {
		if i > 0 {
			p.write(", ")
		}
		p.tableName(name)
	}
	return nil
}

func (p *printer) renameStmt(s *core.RenameStmt) error {
	p.keyword("RENAME TABLE ")
	for i, pair := range s.Pairs {
		if i > 0 {
			p.write(", ")
		}
		p.tableName(pair.From)
		p.keyword(" TO ")
		p.tableName(pair.To)
	}
	return nil
}

// ---------- Session / access / procedural ----------

func (p *printer) setStmt(s *core.SetStmt) error {
	p.keyword("SET ")
	if s.Scope != "" {
		p.keyword(s.Scope)
		p.space()
	}
	for i, item := range s.Items {
		if i > 0 {
			p.write(", ")
		}
		// SET NAMES has no equals sign; variable names keep their @@
		// prefixes verbatim.
		p.write(item.Name)
		if item.Name != "NAMES" {
			p.write(" = ")
		} else {
			p.space()
		}
		if err := p.expr(item.Value); err != nil {
			return err
		}
	}
	return nil
}

func (p *printer) lockStmt(s *core.LockStmt) error {
	p.keyword("LOCK TABLES ")
	for i, item := range s.Items {
		if i > 0 {
			p.write(", ")
		}
		p.tableName(item.Table)
		if item.Alias != "" {
			p.keyword(" AS ")
			p.ident(item.Alias)
		}
		p.space()
		p.keyword(item.Mode)
	}
	return nil
}

func (p *printer) showStmt(s *core.ShowStmt) error {
	p.keyword("SHOW ")
	p.keyword(s.Subject)
	if s.From != nil {
		// SHOW CREATE TABLE names its object directly; the list forms
		// use FROM.
		if strings.HasPrefix(s.Subject, "CREATE") {
			p.space()
		} else {
			p.keyword(" FROM ")
		}
		p.tableName(s.From)
	}
	if s.Like != nil {
		p.keyword(" LIKE ")
		if err := p.expr(s.Like); err != nil {
			return err
		}
	}
	if s.Where != nil {
		p.keyword(" WHERE ")
		if err := p.expr(s.Where); err != nil {
			return err
		}
	}
	return nil
}

func (p *printer) grantStmt(s *core.GrantStmt) error {
	if s.Revoke {
		p.keyword("REVOKE ")
	} else {
		p.keyword("GRANT ")
	}
	for i, priv := range s.Privileges {
		if i > 0 {
			p.write(", ")
		}
		p.keyword(priv)
	}
	p.keyword(" ON ")
	if s.ObjectType != "" {
		p.keyword(s.ObjectType)
		p.space()
	}
	p.tableName(s.Object)
	if s.Revoke {
		p.keyword(" FROM ")
	} else {
		p.keyword(" TO ")
	}
	for i, grantee := range s.Grantees {
		if i > 0 {
			p.write(", ")
		}
		p.write(grantee)
	}
	if s.GrantOption {
		p.keyword(" WITH GRANT OPTION")
	}
	return nil
}

func (p *printer) declareStmt(s *core.DeclareStmt) error {
	p.keyword("DECLARE ")
	for i, v := range s.Vars {
		if i > 0 {
			p.write(", ")
		}
		p.write(v.Name)
		p.space()
		p.write(v.Type.String())
		if v.Default != nil {
			p.write(" = ")
			if err := p.operand(v.Default, precBitOr); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *printer) ifStmt(s *core.IfStmt) error {
	for i, branch := range s.Branches {
		if i == 0 {
			p.keyword("IF ")
		} else {
			p.keyword("ELSEIF ")
		}
		if err := p.expr(branch.Condition); err != nil {
			return err
		}
		p.keyword(" THEN ")
		if err := p.procBody(branch.Body); err != nil {
			return err
		}
	}
	if s.Else != nil {
		p.keyword("ELSE ")
		if err := p.procBody(s.Else); err != nil {
			return err
		}
	}
	p.keyword("END IF")
	return nil
}

func (p *printer) forStmt(s *core.ForStmt) error {
	p.keyword("FOR ")
	p.write(s.Variable)
	p.keyword(" IN ")
	if err := p.selectChain(s.Query); err != nil {
		return err
	}
	p.keyword(" DO ")
	if err := p.procBody(s.Body); err != nil {
		return err
	}
	p.keyword("END FOR")
	return nil
}

// procBody renders a procedural block's statements, each terminated
// with a semicolon as the block grammar requires.
func (p *printer) procBody(body []core.Statement) error {
	for _, stmt := range body {
		if err := p.stmt(stmt); err != nil {
			return err
		}
		p.write("; ")
	}
	return nil
}

func (p *printer) callStmt(s *core.CallStmt) error {
	p.keyword("CALL ")
	p.write(s.Proc)
	p.write("(")
	if err := p.exprList(s.Args); err != nil {
		return err
	}
	p.write(")")
	return nil
}

func (p *printer) transactionStmt(s *core.TransactionStmt) error {
	switch s.Kind {
	case core.TxBegin, core.TxStart, core.TxCommit, core.TxRollback:
		p.keyword(string(s.Kind))
		if s.Modifier != "" {
			p.space()
			p.keyword(s.Modifier)
		}
		if s.Kind == core.TxRollback && s.Savepoint != "" {
			p.keyword(" TO SAVEPOINT ")
			p.ident(s.Savepoint)
		}
	case core.TxSavepoint, core.TxRelease:
		p.keyword(string(s.Kind))
		p.space()
		p.ident(s.Savepoint)
	default:
		return renderErr(s, "unknown transaction statement kind")
	}
	return nil
}

func (p *printer) commentStmt(s *core.CommentStmt) error {
	p.keyword("COMMENT ON ")
	p.keyword(s.ObjectType)
	p.space()
	for i, part := range s.Name {
		if i > 0 {
			p.write(".")
		}
		p.ident(part)
	}
	p.keyword(" IS ")
	if s.Text == nil {
		p.keyword("NULL")
	} else {
		p.str(*s.Text)
	}
	return nil
}

func (p *printer) explainStmt(s *core.ExplainStmt) error {
	p.keyword("EXPLAIN ")
	if s.Analyze {
		p.keyword("ANALYZE ")
	}
	return p.stmt(s.Target)
}
